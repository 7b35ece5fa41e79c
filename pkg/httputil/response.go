package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/eskiden/marketplace/pkg/errors"
	"github.com/eskiden/marketplace/pkg/logger"
	"github.com/eskiden/marketplace/pkg/validator"
)

// ErrorBody is the error payload shared by every failing endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the confirmation payload for operations with no data to return.
type MessageBody struct {
	Message string `json:"message"`
}

// serverErrorMessage is the only detail unexpected failures may leak to callers.
const serverErrorMessage = "Server error"

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, the error is logged but headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {message} confirmation payload.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageBody{Message: message})
}

// WriteError writes the standardized {error} payload for the given error.
// Validation, not-found, auth and conflict errors surface their message with
// the mapped status; everything else is logged server-side in full and
// collapses to a generic 500. It prefers the request-scoped logger from
// context (set by the RequestLogger middleware) over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		WriteJSON(w, http.StatusInternalServerError, ErrorBody{Error: serverErrorMessage})
		return
	}

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	WriteJSON(w, status, ErrorBody{Error: message})
}

// WriteValidationError writes a 400 {error} payload for a failed request
// validation, flattening field-level errors into a single message.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: valErr.Error()})
		return
	}

	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error()})
}
