package handler

import (
	"errors"
	"net/http"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"github.com/yusufkecer/workout-recorder-backend/internal/httpx"
	"github.com/yusufkecer/workout-recorder-backend/internal/middleware"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	httpx.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	httpx.WriteError(w, status, code, message)
}

func writeValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	httpx.WriteErrorDetails(w, http.StatusUnprocessableEntity, httpx.CodeValidation, "validation failed", verr.Fields)
}

// writeServiceError maps a service error to its status and code. Anything
// unrecognised is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, httpx.CodeNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusBadRequest, httpx.CodeDuplicate, domain.ErrDuplicate.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, httpx.CodeInvalidCredentials, domain.ErrInvalidCredentials.Error())
	default:
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal server error")
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, httpx.CodeNotFound, "not found")
	})
}

func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, httpx.CodeMethodNotAllowed, "method not allowed")
	})
}
