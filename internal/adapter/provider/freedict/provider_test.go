package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/myvocab-backend/internal/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(baseURL string, breakerFailures uint32) *Provider {
	p := NewProvider(config.DictionaryConfig{
		BaseURL:         baseURL,
		Timeout:         2 * time.Second,
		BreakerFailures: breakerFailures,
		BreakerCooldown: time.Minute,
	}, newTestLogger())
	p.retryDelay = 0
	return p
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_FetchEntry_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"phonetic": "həˈləʊ",
		"phonetics": [
			{"text": "/həˈloʊ/", "audio": ""},
			{"text": "/hɛˈləʊ/", "audio": "https://example.com/hello-uk.mp3"},
			{"text": "/hɛˈloʊ/", "audio": "https://example.com/hello-us.mp3"}
		],
		"meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "A greeting."}]}]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL, 5)
	result, err := p.FetchEntry(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}

	if result.Word != "hello" {
		t.Errorf("Word = %q, want %q", result.Word, "hello")
	}
	if result.Phonetic != "həˈləʊ" {
		t.Errorf("Phonetic = %q, want top-level phonetic", result.Phonetic)
	}
	if result.AudioURL != "https://example.com/hello-uk.mp3" {
		t.Errorf("AudioURL = %q, want first non-empty audio", result.AudioURL)
	}
}

func TestProvider_FetchEntry_PhoneticFallsBackToFirstPhonetics(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[{
		"word": "cat",
		"phonetics": [{"text": "/kæt/"}, {"text": "/kat/", "audio": ""}]
	}]`)

	result, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Phonetic != "/kæt/" {
		t.Errorf("Phonetic = %q, want %q", result.Phonetic, "/kæt/")
	}
	if result.AudioURL != "" {
		t.Errorf("AudioURL = %q, want empty", result.AudioURL)
	}
}

func TestProvider_FetchEntry_OnlyFirstEntryUsed(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[
		{"word": "run", "phonetics": []},
		{"word": "run", "phonetic": "/rʌn/", "phonetics": [{"audio": "https://example.com/run.mp3"}]}
	]`)

	result, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Phonetic != "" || result.AudioURL != "" {
		t.Errorf("got %+v, want empty phonetic and audio", result)
	}
}

func TestProvider_FetchEntry_NotFound(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)

	result, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "asdfxyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for 404, got %+v", result)
	}
}

func TestProvider_FetchEntry_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := callCount.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"word":"test","phonetic":"/tɛst/","phonetics":[]}]`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.Phonetic != "/tɛst/" {
		t.Fatalf("unexpected result after retry: %+v", result)
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestProvider_FetchEntry_ServerErrorBothAttemptsFail(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "fail")
	if err == nil {
		t.Fatal("expected error when both attempts fail")
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestProvider_FetchEntry_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `not valid json`)

	_, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestProvider_FetchEntry_UnexpectedShape(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `{"word":"cat"}`)

	_, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "cat")
	if err == nil {
		t.Fatal("expected error for non-array body")
	}
}

func TestProvider_FetchEntry_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[]`)

	result, err := newTestProvider(srv.URL, 5).FetchEntry(context.Background(), "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result for empty array")
	}
	if result.Phonetic != "" || result.AudioURL != "" {
		t.Errorf("got %+v, want empty result", result)
	}
}

func TestProvider_FetchEntry_EscapesWord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/well-being" {
			t.Errorf("unexpected path: %s", r.URL.EscapedPath())
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := newTestProvider(srv.URL+"/", 5).FetchEntry(context.Background(), "well-being"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProvider_FetchEntry_BreakerOpens(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL, 2)
	for i := 0; i < 2; i++ {
		if _, err := p.FetchEntry(context.Background(), "cat"); err == nil {
			t.Fatalf("attempt %d: expected error", i)
		}
	}

	calls := callCount.Load()
	_, err := p.FetchEntry(context.Background(), "cat")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected ErrOpenState, got %v", err)
	}
	if got := callCount.Load(); got != calls {
		t.Errorf("open breaker should not reach the server, calls %d -> %d", calls, got)
	}
}

func TestProvider_FetchEntry_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusNotFound, `{}`)

	p := newTestProvider(srv.URL, 1)
	for i := 0; i < 3; i++ {
		if _, err := p.FetchEntry(context.Background(), "zzz"); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
	}
}
