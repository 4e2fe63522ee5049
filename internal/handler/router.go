package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/workout-recorder-backend/internal/config"
	"github.com/yusufkecer/workout-recorder-backend/internal/middleware"
	"github.com/yusufkecer/workout-recorder-backend/internal/security"
	"github.com/yusufkecer/workout-recorder-backend/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Deps struct {
	Config  *config.Config
	Users   *service.UserService
	Records *service.RecordService
	Tokens  *security.TokenManager
	Log     *zap.Logger
}

// NewRouter wires every route under /api/v1. CORS and request IDs wrap the
// whole router so preflight and unmatched requests get them too.
func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Users, d.Tokens, d.Log)
	userHandler := NewUserHandler(d.Users, d.Log)
	recordHandler := NewRecordHandler(d.Records, d.Log)
	authenticator := middleware.NewAuthenticator(d.Tokens, d.Users, d.Log)

	r := mux.NewRouter()
	r.NotFoundHandler = notFoundHandler()
	r.MethodNotAllowedHandler = methodNotAllowedHandler()

	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKey(d.Config.APIKey))

	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/token", authHandler.Token).Methods(http.MethodPost)
	api.HandleFunc("/users", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/", authHandler.Register).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(authenticator.Middleware)

	protected.HandleFunc("/users/me", userHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/profile", userHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/profile", userHandler.UpdateProfile).Methods(http.MethodPut)

	for _, path := range []string{"/records", "/records/"} {
		protected.HandleFunc(path, recordHandler.Create).Methods(http.MethodPost)
		protected.HandleFunc(path, recordHandler.List).Methods(http.MethodGet)
	}
	protected.HandleFunc("/records/{id:[0-9]+}", recordHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/records/{id:[0-9]+}", recordHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/records/{id:[0-9]+}", recordHandler.Delete).Methods(http.MethodDelete)

	return middleware.CORS(d.Config.AllowedOrigins)(middleware.RequestID(r))
}
