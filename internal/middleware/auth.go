package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"github.com/yusufkecer/workout-recorder-backend/internal/httpx"
	"github.com/yusufkecer/workout-recorder-backend/internal/security"
	"go.uber.org/zap"
)

type TokenDecoder interface {
	Decode(token string) (string, error)
}

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticator resolves the bearer token of a request to an active user.
type Authenticator struct {
	tokens TokenDecoder
	users  UserLookup
	log    *zap.Logger
}

func NewAuthenticator(tokens TokenDecoder, users UserLookup, log *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, httpx.CodeUnauthorized, "not authenticated")
			return
		}

		subject, err := a.tokens.Decode(tokenStr)
		if err != nil {
			a.log.Warn("token rejected",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err),
			)
			if errors.Is(err, security.ErrTokenExpired) {
				unauthorized(w, httpx.CodeTokenExpired, "token has expired")
				return
			}
			unauthorized(w, httpx.CodeUnauthorized, "could not validate credentials")
			return
		}

		user, err := a.users.GetByEmail(r.Context(), subject)
		if err != nil {
			a.log.Error("failed to load token subject",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err),
			)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal server error")
			return
		}
		if user == nil {
			a.log.Warn("token subject rejected",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(domain.ErrNotFound),
			)
			unauthorized(w, httpx.CodeUnauthorized, "could not validate credentials")
			return
		}
		if !user.IsActive {
			a.log.Warn("token subject rejected",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Int64("user_id", user.ID),
				zap.Error(domain.ErrInactiveUser),
			)
			unauthorized(w, httpx.CodeUnauthorized, "could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user, or nil outside an
// authenticated route.
func CurrentUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, code, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpx.WriteError(w, http.StatusUnauthorized, code, message)
}
