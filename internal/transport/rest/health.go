package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// llmChecker reports whether the language model credentials are present.
type llmChecker interface {
	IsConfigured() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	llm     llmChecker
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(llm llmChecker, version string) *HealthHandler {
	return &HealthHandler{llm: llm, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 when LLM credentials are set, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.llm.IsConfigured() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports version and component state. It answers 200 whenever the
// process is up; missing LLM credentials surface as components.llm=unconfigured.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	llm := CompStatus{Status: "ok"}
	if !h.llm.IsConfigured() {
		llm.Status = "unconfigured"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: map[string]CompStatus{"llm": llm},
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
