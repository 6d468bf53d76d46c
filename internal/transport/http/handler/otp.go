package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jago-app/jago-api/internal/application/otp"
	"github.com/jago-app/jago-api/internal/domain"
	"github.com/jago-app/jago-api/internal/pkg/validate"
)

// OTPHandler handles OTP issuance and verification.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler { return &OTPHandler{svc: svc} }

type getOTPRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Type     string `json:"type" validate:"required"`
	Channel  string `json:"channel"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
	Type  string `json:"type" validate:"required"`
}

func (h *OTPHandler) GetOTP(w http.ResponseWriter, r *http.Request) {
	var req getOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	purpose, ok := domain.ParseOTPPurpose(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown otp type")
		return
	}

	err := h.svc.Issue(r.Context(), otp.IssueRequest{
		Email:    req.Email,
		Password: req.Password,
		Purpose:  purpose,
		Channel:  req.Channel,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "OTP sent to your email"})
}

func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	purpose, ok := domain.ParseOTPPurpose(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown otp type")
		return
	}

	verified, err := h.svc.Verify(r.Context(), req.Email, req.OTP, purpose)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyOTPEnvelope{
		Success: true,
		Message: "OTP verified successfully",
		Type:    string(verified),
	})
}
