package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jago-app/jago-api/internal/application/settings"
	"github.com/jago-app/jago-api/internal/pkg/validate"
	"github.com/jago-app/jago-api/internal/transport/http/middleware"
)

// SettingsHandler handles per-user settings endpoints.
type SettingsHandler struct {
	svc settings.Service
}

func NewSettingsHandler(svc settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type updateSettingsRequest struct {
	UserID   string `json:"userId" validate:"required"`
	GoogleID string `json:"googleId"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.svc.Upsert(r.Context(), req.UserID, req.GoogleID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsEnvelope{Success: true, Settings: doc})
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	doc, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsEnvelope{Success: true, Settings: doc})
}
