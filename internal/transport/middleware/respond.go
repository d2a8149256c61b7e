package middleware

import (
	"encoding/json"
	"net"
	"net/http"
)

// errorEnvelope mirrors the API error body so clients parse middleware
// rejections the same way as handler errors.
type errorEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{ //nolint:errcheck
		Status:     "error",
		StatusCode: status,
		Message:    message,
	})
}

// clientIP returns the host part of r.RemoteAddr, or RemoteAddr as is when
// it carries no port (the Lambda adapter sets the bare source IP).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
