package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/jago-app/jago-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the user lookup the OTP flow needs for precondition checks.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OTPStore persists live codes. Put atomically supersedes any prior code for
// the email; DeleteMatching atomically consumes a matching code, returning
// domain.ErrNotFound when nothing matched.
type OTPStore interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	DeleteMatching(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.OTPRecord, error)
}

// Mailer delivers the code over email.
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

// SMSSender delivers the code over SMS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type IssueRequest struct {
	Email    string
	Password string
	Purpose  domain.OTPPurpose
	// Channel selects the delivery channel: "" / "email" or "sms".
	// SMS needs a phone on the user record, so it only applies to
	// signin and forgotpass.
	Channel string
}

type Service interface {
	Issue(ctx context.Context, req IssueRequest) error
	Verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (domain.OTPPurpose, error)
}

// ServiceDeps wires the service's collaborators.
type ServiceDeps struct {
	OTPRepo  OTPStore
	UserRepo UserStore
	Mailer   Mailer
	SMS      SMSSender
	Validity time.Duration
	Now      func() time.Time // defaults to time.Now
}

type service struct {
	otpRepo  OTPStore
	userRepo UserStore
	mailer   Mailer
	sms      SMSSender
	validity time.Duration
	now      func() time.Time
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Validity <= 0 {
		deps.Validity = 2 * time.Minute
	}
	return &service{
		otpRepo:  deps.OTPRepo,
		userRepo: deps.UserRepo,
		mailer:   deps.Mailer,
		sms:      deps.SMS,
		validity: deps.Validity,
		now:      deps.Now,
	}
}

func (s *service) Issue(ctx context.Context, req IssueRequest) error {
	if req.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}
	if req.Purpose != domain.PurposeForgotPass && req.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrBadRequest)
	}

	var user *domain.User
	switch req.Purpose {
	case domain.PurposeSignup:
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("user already registered: %w", domain.ErrConflict)
		}
	case domain.PurposeSignin:
		u, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("user not found: %w", domain.ErrNotFound)
			}
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			return fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
		}
		user = u
	case domain.PurposeForgotPass:
		u, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("user not found: %w", domain.ErrNotFound)
			}
			return err
		}
		user = u
	default:
		return fmt.Errorf("unknown otp type: %w", domain.ErrBadRequest)
	}

	code, err := sixDigitCode()
	if err != nil {
		return err
	}

	// Keyed by email, so this single write both purges any prior code and
	// persists the new one. Two racing issuers cannot leave two live codes.
	rec := &domain.OTPRecord{
		Email:     req.Email,
		Code:      code,
		Purpose:   req.Purpose,
		CreatedAt: s.now().Unix(),
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return err
	}

	// Delivery failure leaves the record persisted. The user retries by
	// re-issuing, which supersedes it.
	if req.Channel == "sms" && s.sms != nil && user != nil && user.Phone != nil {
		return s.sms.SendSMS(ctx, *user.Phone, fmt.Sprintf("Your Jago OTP is %s. Valid for %d minutes.", code, int(s.validity.Minutes())))
	}
	return s.mailer.SendEmail(req.Email, "Your OTP Code: "+code, otpEmailHTML(code, int(s.validity.Minutes())))
}

func (s *service) Verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (domain.OTPPurpose, error) {
	if email == "" || code == "" {
		return "", fmt.Errorf("email and otp are required: %w", domain.ErrBadRequest)
	}

	// The conditional delete is the single atomic step that gates success:
	// exactly one of any number of concurrent verifiers can consume a code,
	// and the record is gone on every outcome.
	rec, err := s.otpRepo.DeleteMatching(ctx, email, code, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("invalid otp: %w", domain.ErrInvalidOTP)
		}
		return "", err
	}

	if s.now().Sub(time.Unix(rec.CreatedAt, 0)) > s.validity {
		slog.Info("rejected expired otp", "email", email, "type", rec.Purpose)
		return "", fmt.Errorf("otp expired, please request again: %w", domain.ErrOTPExpired)
	}
	return rec.Purpose, nil
}

// sixDigitCode draws uniformly over [100000, 999999].
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}

func otpEmailHTML(code string, validMinutes int) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #e0e0e0; padding: 20px; border-radius: 10px;">
  <h2 style="color: #f2692a; border-bottom: 1px solid #ccc; padding-bottom: 10px;">OTP Verification</h2>
  <p>Your One-Time Password is:</p>
  <p style="font-size: 22px; font-weight: bold; color: #333;">%s</p>
  <p>This OTP is valid for <strong>%d minutes</strong>.</p>
  <footer style="margin-top: 30px; font-size: 12px; color: #f2692a; text-align: center;">© %d Jago App. All rights reserved.</footer>
</div>`, code, validMinutes, time.Now().Year())
}
