package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jago-app/jago-api/internal/application/otp"
	"github.com/jago-app/jago-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOTPService struct{ mock.Mock }

func (m *mockOTPService) Issue(ctx context.Context, req otp.IssueRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockOTPService) Verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (domain.OTPPurpose, error) {
	args := m.Called(ctx, email, code, purpose)
	return args.Get(0).(domain.OTPPurpose), args.Error(1)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestGetOTP_OK(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Issue", mock.Anything, otp.IssueRequest{
		Email:    "a@x.com",
		Password: "pw",
		Purpose:  domain.PurposeSignin,
	}).Return(nil)

	h := NewOTPHandler(svc)
	rr := postJSON(t, h.GetOTP, `{"email":"a@x.com","password":"pw","type":"signin"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "OTP sent")
	svc.AssertExpectations(t)
}

func TestGetOTP_InvalidBody(t *testing.T) {
	h := NewOTPHandler(&mockOTPService{})
	rr := postJSON(t, h.GetOTP, `not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["success"])
}

func TestGetOTP_BadEmail(t *testing.T) {
	h := NewOTPHandler(&mockOTPService{})
	rr := postJSON(t, h.GetOTP, `{"email":"not-an-email","type":"signin"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetOTP_UnknownType(t *testing.T) {
	h := NewOTPHandler(&mockOTPService{})
	rr := postJSON(t, h.GetOTP, `{"email":"a@x.com","password":"pw","type":"resurrect"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["message"], "unknown otp type")
}

func TestGetOTP_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"conflict", fmt.Errorf("user already registered: %w", domain.ErrConflict), http.StatusBadRequest},
		{"not found", fmt.Errorf("user not found: %w", domain.ErrNotFound), http.StatusNotFound},
		{"bad credentials", fmt.Errorf("invalid password: %w", domain.ErrUnauthorized), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockOTPService{}
			svc.On("Issue", mock.Anything, mock.AnythingOfType("otp.IssueRequest")).Return(tc.err)

			h := NewOTPHandler(svc)
			rr := postJSON(t, h.GetOTP, `{"email":"a@x.com","password":"pw","type":"signup"}`)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, false, decodeBody(t, rr)["success"])
		})
	}
}

func TestVerifyOTP_OK_EchoesPurpose(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Verify", mock.Anything, "a@x.com", "123456", domain.PurposeForgotPass).
		Return(domain.PurposeForgotPass, nil)

	h := NewOTPHandler(svc)
	rr := postJSON(t, h.VerifyOTP, `{"email":"a@x.com","otp":"123456","type":"forgotpass"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "forgotpass", body["type"])
}

func TestVerifyOTP_RejectsNonNumericCode(t *testing.T) {
	h := NewOTPHandler(&mockOTPService{})
	rr := postJSON(t, h.VerifyOTP, `{"email":"a@x.com","otp":"12a456","type":"signin"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyOTP_RejectsShortCode(t *testing.T) {
	h := NewOTPHandler(&mockOTPService{})
	rr := postJSON(t, h.VerifyOTP, `{"email":"a@x.com","otp":"123","type":"signin"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyOTP_InvalidAndExpiredBoth400(t *testing.T) {
	for _, sentinel := range []error{domain.ErrInvalidOTP, domain.ErrOTPExpired} {
		svc := &mockOTPService{}
		svc.On("Verify", mock.Anything, "a@x.com", "123456", domain.PurposeSignin).
			Return(domain.OTPPurpose(""), fmt.Errorf("rejected: %w", sentinel))

		h := NewOTPHandler(svc)
		rr := postJSON(t, h.VerifyOTP, `{"email":"a@x.com","otp":"123456","type":"signin"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, false, decodeBody(t, rr)["success"])
	}
}
