package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jago-app/jago-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Every error response is
// `{success:false, message}`; successes set success true.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// VerifyOTPEnvelope carries the verified purpose back so the client can
// branch (signup vs signin vs password reset).
type VerifyOTPEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Type    string `json:"type"`
}

// AttendanceEnvelope wraps single-record attendance responses.
type AttendanceEnvelope struct {
	Success    bool                     `json:"success"`
	Attendance *domain.AttendanceRecord `json:"attendance"`
}

// AttendanceListEnvelope wraps the today query.
type AttendanceListEnvelope struct {
	Success bool                      `json:"success"`
	Data    []domain.AttendanceRecord `json:"data"`
}

// AuthEnvelope wraps signup/signin responses.
type AuthEnvelope struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// SettingsEnvelope wraps settings responses.
type SettingsEnvelope struct {
	Success  bool             `json:"success"`
	Settings *domain.Settings `json:"settings"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": msg})
}

// httpError maps domain sentinels to statuses. Credential mismatches come
// back 400 on these routes, matching the original wire contract; 401 is
// reserved for the bearer middleware.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrNoOpenShift):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
