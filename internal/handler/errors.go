package handler

import (
	"errors"
	"net/http"

	"convertify/internal/domain"
	"convertify/internal/httputil"
)

// handleError converts domain errors to problem responses. Every error body
// carries success=false and an error message for the upload client.
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &httpErr):
		status := httpErr.StatusCode()
		detail := httpErr.Error()
		if status >= http.StatusInternalServerError {
			respondFailure(w, status, "conversion failed", detail)
			return
		}
		respondFailure(w, status, detail, "")
	case errors.Is(err, domain.ErrValidation):
		respondFailure(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrUnauthorized):
		respondFailure(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, domain.ErrConflict):
		respondFailure(w, http.StatusConflict, err.Error(), "")
	case errors.Is(err, domain.ErrNotFound):
		respondFailure(w, http.StatusNotFound, err.Error(), "")
	default:
		respondFailure(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// respondFailure writes an RFC 7807 body with the success/error fields the
// upload client reads. details is omitted when empty.
func respondFailure(w http.ResponseWriter, status int, message, details string) {
	extras := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if details != "" {
		extras["details"] = details
	}
	detail := message
	if details != "" {
		detail = details
	}
	httputil.RespondErrorWithExtras(w, status, detail, extras)
}
