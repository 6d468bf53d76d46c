package domain

// OTPPurpose is the closed set of flows an OTP can be issued for.
type OTPPurpose string

const (
	PurposeSignup     OTPPurpose = "signup"
	PurposeSignin     OTPPurpose = "signin"
	PurposeForgotPass OTPPurpose = "forgotpass"
)

// ParseOTPPurpose validates a wire-level type string against the closed enum.
func ParseOTPPurpose(s string) (OTPPurpose, bool) {
	switch OTPPurpose(s) {
	case PurposeSignup, PurposeSignin, PurposeForgotPass:
		return OTPPurpose(s), true
	}
	return "", false
}

// OTPRecord is a live one-time password.
// PK: email — a plain PutItem therefore supersedes any prior code for the
// address, which is what keeps "at most one live code per email" true even
// under concurrent issuance.
type OTPRecord struct {
	Email     string     `json:"email" dynamodbav:"email"`
	Code      string     `json:"-" dynamodbav:"code"`
	Purpose   OTPPurpose `json:"type" dynamodbav:"purpose"`
	CreatedAt int64      `json:"created_at" dynamodbav:"created_at"` // Unix seconds
}
