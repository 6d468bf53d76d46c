package http

import (
	"github.com/jago-app/jago-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/jago-app/jago-api/internal/infrastructure/jwt"
	s3infra "github.com/jago-app/jago-api/internal/infrastructure/s3"
	"github.com/jago-app/jago-api/internal/infrastructure/smtp"
	"github.com/jago-app/jago-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	OTPRepo        *dynamo.OTPRepo
	AttendanceRepo *dynamo.AttendanceRepo
	SettingsRepo   *dynamo.SettingsRepo
	FileRepo       *dynamo.FileRepo
	S3Store        *s3infra.Store
	Mailer         smtp.Mailer
	SMSSender      sns.SMSSender
	JWTProvider    *jwtinfra.Provider
}
