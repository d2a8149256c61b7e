package rest

import (
	"context"
	"net/http"

	"github.com/heartmarshall/myvocab-backend/internal/domain"
	"github.com/heartmarshall/myvocab-backend/internal/service/lookup"
)

// lookupService defines the minimal interface needed by LookupHandler.
type lookupService interface {
	Lookup(ctx context.Context, word string) lookup.Response
}

// LookupHandler serves the word lookup endpoint.
type LookupHandler struct {
	svc lookupService
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// LookupResponse is the envelope returned by the lookup endpoint.
// Data is set on success, Message on error.
type LookupResponse struct {
	Status     string             `json:"status"`
	StatusCode int                `json:"statusCode"`
	Data       *domain.WordResult `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// NewLookupResponse wraps a service response in the public envelope.
func NewLookupResponse(resp lookup.Response) LookupResponse {
	if !resp.OK() {
		return LookupResponse{Status: "error", StatusCode: resp.StatusCode, Message: resp.Message}
	}
	return LookupResponse{Status: "success", StatusCode: resp.StatusCode, Data: resp.Data}
}

// Lookup handles GET /api/proxy/my-vocab-app?word=.
// A missing or repeated word parameter is treated as invalid.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var word string
	if values := r.URL.Query()["word"]; len(values) == 1 {
		word = values[0]
	}

	resp := h.svc.Lookup(r.Context(), word)
	writeJSON(w, resp.StatusCode, NewLookupResponse(resp))
}
