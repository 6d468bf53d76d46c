package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jago-app/jago-api/internal/domain"
	"github.com/jago-app/jago-api/internal/pkg/id"
)

// Store persists attendance records. Close is conditional on the record still
// being open; LatestOpen and Close both report domain.ErrNotFound when there
// is nothing (left) to act on.
type Store interface {
	Put(ctx context.Context, rec *domain.AttendanceRecord) error
	LatestOpen(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	Close(ctx context.Context, attendanceID string, clockOut time.Time) (*domain.AttendanceRecord, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.AttendanceRecord, error)
}

type Service interface {
	ClockIn(ctx context.Context, req domain.ClockInRequest) (*domain.AttendanceRecord, error)
	ClockOut(ctx context.Context, userID string) (*domain.AttendanceRecord, error)
	Today(ctx context.Context, userID string) ([]domain.AttendanceRecord, error)
}

// ServiceDeps wires the service's collaborators. Loc fixes the calendar-day
// boundary for the today query; Now is injectable for tests.
type ServiceDeps struct {
	Repo Store
	Loc  *time.Location
	Now  func() time.Time
}

type service struct {
	repo Store
	loc  *time.Location
	now  func() time.Time
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Loc == nil {
		deps.Loc = time.UTC
	}
	return &service{repo: deps.Repo, loc: deps.Loc, now: deps.Now}
}

// ClockIn opens a new shift. A user has at most one open shift at a time;
// clocking in while one is open is a conflict.
func (s *service) ClockIn(ctx context.Context, req domain.ClockInRequest) (*domain.AttendanceRecord, error) {
	_, err := s.repo.LatestOpen(ctx, req.UserID)
	if err == nil {
		return nil, fmt.Errorf("shift already open: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	rec := &domain.AttendanceRecord{
		AttendanceID:    id.New(),
		UserID:          req.UserID,
		ClockIn:         s.now().UTC(),
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ClockOut closes the user's most recent open shift. The close is a
// conditional update, so if another request closes it first this one reports
// no open shift rather than double-closing.
func (s *service) ClockOut(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	open, err := s.repo.LatestOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no open shift for user %s: %w", userID, domain.ErrNoOpenShift)
		}
		return nil, err
	}

	closed, err := s.repo.Close(ctx, open.AttendanceID, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("shift already closed: %w", domain.ErrNoOpenShift)
		}
		return nil, err
	}
	return closed, nil
}

// Today returns the user's records since the start of the current calendar
// day in the configured timezone, newest first.
func (s *service) Today(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	now := s.now().In(s.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return s.repo.ListSince(ctx, userID, startOfDay.UTC())
}
