package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jago-app/jago-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, rec *domain.AttendanceRecord) error {
	return m.Called(ctx, rec).Error(0)
}
func (m *mockStore) LatestOpen(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID)
	if rec, _ := args.Get(0).(*domain.AttendanceRecord); rec != nil {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Close(ctx context.Context, attendanceID string, clockOut time.Time) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, attendanceID, clockOut)
	if rec, _ := args.Get(0).(*domain.AttendanceRecord); rec != nil {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID, since)
	if recs, _ := args.Get(0).([]domain.AttendanceRecord); recs != nil {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(store *mockStore, loc *time.Location, now func() time.Time) Service {
	return NewService(ServiceDeps{Repo: store, Loc: loc, Now: now})
}

func TestClockIn_CreatesOpenRecord(t *testing.T) {
	store := &mockStore{}
	store.On("LatestOpen", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	var stored *domain.AttendanceRecord
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.AttendanceRecord")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.AttendanceRecord) }).
		Return(nil)

	now := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	lat, lng := -6.2, 106.8
	addr := "Jakarta"
	svc := newService(store, time.UTC, func() time.Time { return now })

	rec, err := svc.ClockIn(context.Background(), domain.ClockInRequest{
		UserID:          "u1",
		LocationLat:     &lat,
		LocationLng:     &lng,
		LocationAddress: &addr,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Same(t, stored, rec)
	assert.NotEmpty(t, rec.AttendanceID)
	assert.Equal(t, "u1", rec.UserID)
	assert.True(t, rec.ClockIn.Equal(now))
	assert.Nil(t, rec.ClockOut)
	assert.Equal(t, &addr, rec.LocationAddress)
}

func TestClockIn_ConflictWhenShiftOpen(t *testing.T) {
	store := &mockStore{}
	store.On("LatestOpen", mock.Anything, "u1").
		Return(&domain.AttendanceRecord{AttendanceID: "a1", UserID: "u1"}, nil)

	svc := newService(store, nil, nil)
	_, err := svc.ClockIn(context.Background(), domain.ClockInRequest{UserID: "u1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestClockOut_ClosesMostRecentOpen(t *testing.T) {
	in := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	out := time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC)

	store := &mockStore{}
	store.On("LatestOpen", mock.Anything, "u1").
		Return(&domain.AttendanceRecord{AttendanceID: "a1", UserID: "u1", ClockIn: in}, nil)
	store.On("Close", mock.Anything, "a1", out).
		Return(&domain.AttendanceRecord{AttendanceID: "a1", UserID: "u1", ClockIn: in, ClockOut: &out}, nil)

	svc := newService(store, time.UTC, func() time.Time { return out })
	rec, err := svc.ClockOut(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, rec.ClockOut)
	assert.True(t, rec.ClockOut.After(rec.ClockIn))
}

func TestClockOut_NoOpenShift(t *testing.T) {
	store := &mockStore{}
	store.On("LatestOpen", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	svc := newService(store, nil, nil)
	_, err := svc.ClockOut(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoOpenShift))
}

func TestClockOut_RacedClose_ReportsNoOpenShift(t *testing.T) {
	in := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	store := &mockStore{}
	store.On("LatestOpen", mock.Anything, "u1").
		Return(&domain.AttendanceRecord{AttendanceID: "a1", UserID: "u1", ClockIn: in}, nil)
	store.On("Close", mock.Anything, "a1", mock.AnythingOfType("time.Time")).
		Return(nil, domain.ErrNotFound)

	svc := newService(store, nil, nil)
	_, err := svc.ClockOut(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoOpenShift))
}

func TestToday_QueriesFromMidnightUTC(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC)
	wantSince := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	store := &mockStore{}
	store.On("ListSince", mock.Anything, "u1", wantSince).
		Return([]domain.AttendanceRecord{{AttendanceID: "a1", UserID: "u1"}}, nil)

	svc := newService(store, time.UTC, func() time.Time { return now })
	recs, err := svc.Today(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	store.AssertExpectations(t)
}

func TestToday_DayBoundaryFollowsLocation(t *testing.T) {
	// 02:00 UTC is still the previous local day at UTC-5, so the window
	// opens at the previous local midnight (05:00 UTC the day before).
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC)
	wantSince := time.Date(2026, 8, 31, 5, 0, 0, 0, time.UTC)

	store := &mockStore{}
	store.On("ListSince", mock.Anything, "u1", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			got := args.Get(2).(time.Time)
			assert.True(t, got.Equal(wantSince), "since = %v, want %v", got, wantSince)
		}).
		Return([]domain.AttendanceRecord{}, nil)

	svc := newService(store, loc, func() time.Time { return now })
	_, err := svc.Today(context.Background(), "u1")
	require.NoError(t, err)
	store.AssertExpectations(t)
}
