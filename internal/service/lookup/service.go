package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/myvocab-backend/internal/config"
	"github.com/heartmarshall/myvocab-backend/internal/domain"
	"github.com/heartmarshall/myvocab-backend/internal/provider"
)

// Client-facing messages. Upstream details never reach the caller.
const (
	MsgInvalidWord     = "Invalid or missing 'word' query parameter. It must be alphabetic and 1-40 characters long."
	MsgNotConfigured   = "Server configuration error. Missing Azure credentials."
	MsgUpstreamFailure = "Unexpected error from the AI inference service."
	MsgInvalidModel    = "Invalid response format from AI model."
	MsgInternal        = "An error occurred while processing the request."
)

// Sampling parameters sent with every lookup prompt.
const (
	lookupTemperature = 0.7
	lookupTopP        = 1
)

type completer interface {
	Complete(ctx context.Context, prompt string, params provider.CompletionParams) (string, error)
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

// Response is the outcome of one lookup. Exactly one of Data and Message is set.
type Response struct {
	StatusCode int
	Data       *domain.WordResult
	Message    string
}

// OK reports whether the lookup produced data.
func (r Response) OK() bool { return r.StatusCode < http.StatusBadRequest }

// Service answers word lookups: spell check and definition by the language
// model, then best-effort pronunciation data from the dictionary.
type Service struct {
	log  *slog.Logger
	cfg  config.LLMConfig
	llm  completer
	dict dictionaryProvider
}

// NewService creates a lookup service.
func NewService(logger *slog.Logger, cfg config.LLMConfig, llm completer, dict dictionaryProvider) *Service {
	return &Service{
		log:  logger.With("service", "lookup"),
		cfg:  cfg,
		llm:  llm,
		dict: dict,
	}
}

// Lookup runs the full flow for word and never fails: every error is mapped
// to a status code and a fixed message.
func (s *Service) Lookup(ctx context.Context, word string) Response {
	result, err := s.lookup(ctx, word)
	if err != nil {
		return s.errorResponse(ctx, word, err)
	}
	return Response{StatusCode: http.StatusOK, Data: &result}
}

func (s *Service) lookup(ctx context.Context, word string) (domain.WordResult, error) {
	if err := domain.ValidateWord(word); err != nil {
		return domain.WordResult{}, err
	}

	if missing := s.cfg.MissingFields(); len(missing) > 0 {
		return domain.WordResult{}, fmt.Errorf("%w: missing %s", domain.ErrNotConfigured, strings.Join(missing, ", "))
	}

	answer, err := s.ask(ctx, word)
	if err != nil {
		return domain.WordResult{}, err
	}

	if !answer.Correct {
		rejected := answer.Word
		if rejected == "" {
			rejected = word
		}
		return domain.NewRejectedResult(rejected), nil
	}

	if err := answer.Validate(); err != nil {
		s.log.WarnContext(ctx, "model answer does not match expected shape",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
	}

	return domain.NewEnrichedResult(answer, s.enrich(ctx, word)), nil
}

// ask sends the lookup prompt and decodes the reply.
func (s *Service) ask(ctx context.Context, word string) (domain.ModelAnswer, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	content, err := s.llm.Complete(ctx, BuildPrompt(word), provider.CompletionParams{
		Temperature: lookupTemperature,
		TopP:        lookupTopP,
	})
	if err != nil {
		if errors.Is(err, provider.ErrUnexpectedResponse) {
			return domain.ModelAnswer{}, fmt.Errorf("%w: %v", domain.ErrUpstreamProtocol, err)
		}
		return domain.ModelAnswer{}, fmt.Errorf("llm completion: %w", err)
	}

	return domain.ParseModelAnswer(content)
}

// enrich fetches pronunciation data. Failures are logged and yield empty values.
func (s *Service) enrich(ctx context.Context, word string) domain.Enrichment {
	res, err := s.dict.FetchEntry(ctx, word)
	if err != nil {
		s.log.WarnContext(ctx, "dictionary enrichment failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return domain.Enrichment{}
	}
	if res == nil {
		return domain.Enrichment{}
	}
	return domain.Enrichment{Phonetic: res.Phonetic, Audio: res.AudioURL}
}

func (s *Service) errorResponse(ctx context.Context, word string, err error) Response {
	switch {
	case errors.Is(err, domain.ErrInvalidWord):
		return Response{StatusCode: http.StatusBadRequest, Message: MsgInvalidWord}
	case errors.Is(err, domain.ErrNotConfigured):
		s.log.ErrorContext(ctx, "llm credentials missing", slog.String("error", err.Error()))
		return Response{StatusCode: http.StatusInternalServerError, Message: MsgNotConfigured}
	case errors.Is(err, domain.ErrUpstreamProtocol):
		s.log.ErrorContext(ctx, "llm provider returned an error",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return Response{StatusCode: http.StatusBadGateway, Message: MsgUpstreamFailure}
	case errors.Is(err, domain.ErrInvalidModelOutput):
		s.log.ErrorContext(ctx, "llm returned unparseable content",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return Response{StatusCode: http.StatusBadGateway, Message: MsgInvalidModel}
	default:
		s.log.ErrorContext(ctx, "lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return Response{StatusCode: http.StatusInternalServerError, Message: MsgInternal}
	}
}
