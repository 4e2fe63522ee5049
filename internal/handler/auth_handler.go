package handler

import (
	"errors"
	"mime"
	"net/http"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"github.com/yusufkecer/workout-recorder-backend/internal/httpx"
	"github.com/yusufkecer/workout-recorder-backend/internal/middleware"
	"github.com/yusufkecer/workout-recorder-backend/internal/security"
	"github.com/yusufkecer/workout-recorder-backend/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users  *service.UserService
	tokens *security.TokenManager
	log    *zap.Logger
}

func NewAuthHandler(users *service.UserService, tokens *security.TokenManager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterInput
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Normalize()
	if err := validateStruct(req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			h.log.Info("registration rejected",
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.String("reason", "duplicate"),
			)
		}
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Token exchanges credentials for a bearer token. It takes an OAuth2
// password form (username carries the email) or the same fields as JSON.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if !decodeJSON(w, r, &req) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid form body")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	identifier := req.Identifier()
	if identifier == "" || req.Password == "" {
		verr := &domain.ValidationError{}
		if identifier == "" {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: "username", Message: "is required"})
		}
		if req.Password == "" {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: "password", Message: "is required"})
		}
		writeValidationError(w, verr)
		return
	}

	user, err := h.users.Authenticate(r.Context(), identifier, req.Password)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	h.log.Info("token issued",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Int64("user_id", user.ID),
	)
	writeJSON(w, http.StatusOK, domain.NewBearerToken(token))
}
