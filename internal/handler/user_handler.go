package handler

import (
	"net/http"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"github.com/yusufkecer/workout-recorder-backend/internal/middleware"
	"github.com/yusufkecer/workout-recorder-backend/internal/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewUserHandler(users *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.CurrentUser(r.Context()))
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.CurrentUser(r.Context()).Profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req domain.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateStruct(req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updated.Profile)
}
