package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jago-app/jago-api/internal/application/attendance"
	"github.com/jago-app/jago-api/internal/domain"
	"github.com/jago-app/jago-api/internal/pkg/validate"
)

// AttendanceHandler handles clock-in, clock-out and the today query.
type AttendanceHandler struct {
	svc attendance.Service
}

func NewAttendanceHandler(svc attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req domain.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.ClockIn(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AttendanceEnvelope{Success: true, Attendance: rec})
}

func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	rec, err := h.svc.ClockOut(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AttendanceEnvelope{Success: true, Attendance: rec})
}

func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	recs, err := h.svc.Today(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.AttendanceRecord{}
	}
	writeJSON(w, http.StatusOK, AttendanceListEnvelope{Success: true, Data: recs})
}
