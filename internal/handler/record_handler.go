package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"github.com/yusufkecer/workout-recorder-backend/internal/middleware"
	"github.com/yusufkecer/workout-recorder-backend/internal/service"
	"go.uber.org/zap"
)

type RecordHandler struct {
	records *service.RecordService
	log     *zap.Logger
}

func NewRecordHandler(records *service.RecordService, log *zap.Logger) *RecordHandler {
	return &RecordHandler{records: records, log: log}
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req domain.RecordCreate
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateStruct(req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	rec, err := h.records.Create(r.Context(), req, user.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultPageLimit)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	records, err := h.records.List(r.Context(), user.ID, skip, limit)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	id, err := recordID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	rec, err := h.records.Get(r.Context(), id, user.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	id, err := recordID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	var req domain.RecordUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateStruct(req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	rec, err := h.records.Update(r.Context(), id, user.ID, req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	id, err := recordID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	rec, err := h.records.Delete(r.Context(), id, user.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func recordID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(key, "must be an integer")
	}
	return n, nil
}
