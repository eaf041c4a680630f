// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// DetailResponse is the wire shape of every error response body.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Responder converts application errors into HTTP error responses with
// standardized logging.
type Responder struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewResponder(logger Logger) *Responder {
	return &Responder{logger: logger}
}

// Respond normalizes err to a StandardError, logs it, and writes the
// {"detail": ...} body with the mapped status code.
func (h *Responder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(r, stdErr, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(DetailResponse{Detail: stdErr.Message})
}

func (h *Responder) logError(r *http.Request, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"method":    r.Method,
		"path":      r.URL.Path,
		"errorCode": string(stdErr.Code),
		"status":    status,
		"detail":    stdErr.Message,
	}
	if stdErr.Details != "" {
		fields["details"] = stdErr.Details
	}

	// Client errors are expected traffic; only an unmapped code is a fault.
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
		return
	}
	h.logger.Warn("request rejected", fields)
}
