package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jago-app/jago-api/internal/application/attendance"
	fileapp "github.com/jago-app/jago-api/internal/application/file"
	"github.com/jago-app/jago-api/internal/application/otp"
	"github.com/jago-app/jago-api/internal/application/settings"
	"github.com/jago-app/jago-api/internal/application/user"
	"github.com/jago-app/jago-api/internal/config"
	"github.com/jago-app/jago-api/internal/transport/http/handler"
	appmiddleware "github.com/jago-app/jago-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	loc, err := time.LoadLocation(cfg.AttendanceTimezone)
	if err != nil {
		slog.Warn("invalid attendance timezone, falling back to UTC", "tz", cfg.AttendanceTimezone, "err", err)
		loc = time.UTC
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(otp.ServiceDeps{
		OTPRepo:  deps.OTPRepo,
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
		SMS:      deps.SMSSender,
		Validity: cfg.OTPValidity,
	})
	attendanceSvc := attendance.NewService(attendance.ServiceDeps{
		Repo: deps.AttendanceRepo,
		Loc:  loc,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo: deps.UserRepo,
		Signer:   deps.JWTProvider,
	})
	settingsSvc := settings.NewService(deps.SettingsRepo)
	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	authH := handler.NewAuthHandler(userSvc)
	userH := handler.NewUserHandler(userSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	fileH := handler.NewFileHandler(fileSvc)

	// ── Public routes ────────────────────────────────────────────────────
	r.Get("/health", healthH.Ping)

	r.Route("/otp", func(r chi.Router) {
		r.Use(sensitiveRL.Limit)
		r.Post("/getOtp", otpH.GetOTP)
		r.Post("/verifyOtp", otpH.VerifyOTP)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(sensitiveRL.Limit)
		r.Post("/signup", authH.Signup)
		r.Post("/signin", authH.Signin)
		r.Post("/updatePass", authH.UpdatePassword)
	})

	r.Route("/attendance", func(r chi.Router) {
		r.Post("/clock-in", attendanceH.ClockIn)
		r.Put("/clock-out/{userId}", attendanceH.ClockOut)
		r.Get("/today/{userId}", attendanceH.Today)
	})

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/user/signout", userH.Signout)
		r.Put("/user/update/{userId}", userH.Update)
		r.With(appmiddleware.RequireAdmin).Get("/user/getusers", userH.List)
		r.Get("/user/{slug}", userH.Get)

		r.Get("/settings/get", settingsH.Get)
		r.With(appmiddleware.RequireAdmin).Post("/settings/update", settingsH.Update)

		r.Post("/upload", fileH.Upload)
		r.Get("/upload/{id}", fileH.Download)
	})

	return r
}
