package settings

import (
	"context"
	"time"

	"github.com/jago-app/jago-api/internal/domain"
)

// Store persists per-user settings documents.
type Store interface {
	Put(ctx context.Context, s *domain.Settings) error
	Get(ctx context.Context, userID string) (*domain.Settings, error)
}

type Service interface {
	Upsert(ctx context.Context, userID, googleID string) (*domain.Settings, error)
	Get(ctx context.Context, userID string) (*domain.Settings, error)
}

type service struct {
	repo Store
}

func NewService(repo Store) Service {
	return &service{repo: repo}
}

func (s *service) Upsert(ctx context.Context, userID, googleID string) (*domain.Settings, error) {
	doc := &domain.Settings{
		UserID:    userID,
		GoogleID:  googleID,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	return s.repo.Get(ctx, userID)
}
