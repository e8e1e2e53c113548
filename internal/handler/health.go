package handler

import (
	"database/sql"
	"net/http"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
