package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jago-app/jago-api/internal/domain"
	"github.com/jago-app/jago-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// Store is the user persistence the service needs.
type Store interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

// Signer issues bearer tokens.
type Signer interface {
	Sign(userID string, isAdmin bool, role []string) (string, error)
}

type Service interface {
	Signup(ctx context.Context, email, password string) (*domain.User, string, error)
	Signin(ctx context.Context, email, password string) (*domain.User, string, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	GetBySlug(ctx context.Context, slug string) (*domain.User, error)
	List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type ServiceDeps struct {
	UserRepo Store
	Signer   Signer
}

type service struct {
	repo   Store
	signer Signer
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo, signer: deps.Signer}
}

func (s *service) Signup(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("all fields are required: %w", domain.ErrBadRequest)
	}
	email = strings.ToLower(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("user already exists: %w", domain.ErrConflict)
	}

	username, err := deriveUsername(email)
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		UserName:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         []string{"user"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(u.UserID, u.IsAdmin, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("all fields are required: %w", domain.ErrBadRequest)
	}
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
	}

	token, err := s.signer.Sign(u.UserID, u.IsAdmin, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// UpdatePassword resets a password by email. Callers gate this behind a
// verified forgotpass OTP.
func (s *service) UpdatePassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return fmt.Errorf("all fields are required: %w", domain.ErrBadRequest)
	}
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, u.UserID, map[string]interface{}{"password_hash": string(hash)})
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}

	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.UserName != nil {
		existing, err := s.repo.GetByUsername(ctx, *req.UserName)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.UserID != userID {
			return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
		}
		updates["username"] = *req.UserName
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(*req.Email)
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}
	if len(req.Role) > 0 {
		updates["role"] = req.Role
		updates["is_admin"] = contains(req.Role, "admin")
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// GetBySlug resolves a user by id first, then by username.
func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, slug)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.GetByUsername(ctx, slug)
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.ScanPage(ctx, limit, cursor)
}

// deriveUsername builds "localpart + random 4-digit suffix" from the email.
func deriveUsername(email string) (string, error) {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate username suffix: %w", err)
	}
	return fmt.Sprintf("%s%d", local, 1000+n.Int64()), nil
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
