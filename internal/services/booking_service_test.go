package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type fakeBookingStore struct {
	bookings map[uuid.UUID]*models.BookingSession
	updates  int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[uuid.UUID]*models.BookingSession)}
}

func (s *fakeBookingStore) Create(b *models.BookingSession) error {
	s.bookings[b.ID] = b
	return nil
}

func (s *fakeBookingStore) GetByID(id uuid.UUID) (*models.BookingSession, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) Update(b *models.BookingSession) error {
	s.bookings[b.ID] = b
	s.updates++
	return nil
}

func (s *fakeBookingStore) ListByUser(userID int, statuses []string, limit, offset int) ([]*models.BookingSession, error) {
	var out []*models.BookingSession
	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if b.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func newTestBookingService(store *fakeBookingStore) *BookingService {
	// side-effect collaborators are nil: each is guarded in the service
	return NewBookingService(store, nil, nil, nil, nil, nil, nil, nil, nil, nil)
}

func seedBooking(store *fakeBookingStore, status string) *models.BookingSession {
	b := &models.BookingSession{
		ID:                 uuid.New(),
		UserID:             7,
		Status:             status,
		ScheduledStartTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ScheduledEndTime:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		DurationHours:      2,
		TotalCost:          100,
		AccessCode:         "428915",
	}
	store.bookings[b.ID] = b
	return b
}

func TestOverstayFee(t *testing.T) {
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, OverstayFee(end, end))
	assert.Equal(t, 0.0, OverstayFee(end, end.Add(-10*time.Minute)))
	assert.Equal(t, 0.0, OverstayFee(end, end.Add(14*time.Minute)))
	assert.Equal(t, 20.0, OverstayFee(end, end.Add(15*time.Minute)))
	assert.Equal(t, 20.0, OverstayFee(end, end.Add(29*time.Minute)))
	assert.Equal(t, 40.0, OverstayFee(end, end.Add(30*time.Minute)))
	assert.Equal(t, 80.0, OverstayFee(end, end.Add(time.Hour)))
}

func TestBookingTransitionTable(t *testing.T) {
	assert.True(t, canTransition(models.BookingPending, models.BookingConfirmed, BookingTransitions))
	assert.True(t, canTransition(models.BookingConfirmed, models.BookingActive, BookingTransitions))
	assert.True(t, canTransition(models.BookingActive, models.BookingCompleted, BookingTransitions))
	assert.True(t, canTransition(models.BookingCompleted, models.BookingDisputed, BookingTransitions))

	assert.False(t, canTransition(models.BookingPending, models.BookingActive, BookingTransitions))
	assert.False(t, canTransition(models.BookingCompleted, models.BookingActive, BookingTransitions))
	assert.False(t, canTransition(models.BookingCancelled, models.BookingConfirmed, BookingTransitions))
	assert.False(t, canTransition(models.BookingDisputed, models.BookingCompleted, BookingTransitions))
}

func TestStartSessionOnlyFromConfirmed(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)
	now := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	b := seedBooking(store, models.BookingConfirmed)

	started, err := svc.StartSession(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingActive, started.Status)
	require.NotNil(t, started.ActualStartTime)
	assert.Equal(t, now, *started.ActualStartTime)

	// second start is rejected: the session begins exactly once
	_, err = svc.StartSession(b.ID)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestStartSessionRejectsPendingBooking(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingPending)
	_, err := svc.StartSession(b.ID)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestEndBillsOverstay(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingActive)
	// checkout 35 minutes past the scheduled end: two full blocks
	svc.SetClock(func() time.Time { return b.ScheduledEndTime.Add(35 * time.Minute) })

	ended, err := svc.End(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, ended.Status)
	require.NotNil(t, ended.OverstayFee)
	assert.Equal(t, 40.0, *ended.OverstayFee)
	assert.Equal(t, 140.0, ended.TotalCost)
}

func TestEndOnTimeHasNoOverstayFee(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingActive)
	svc.SetClock(func() time.Time { return b.ScheduledEndTime.Add(-5 * time.Minute) })

	ended, err := svc.End(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Nil(t, ended.OverstayFee)
	assert.Equal(t, 100.0, ended.TotalCost)
}

func TestEndRejectsOtherUsersBooking(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingActive)
	_, err := svc.End(b.ID, b.UserID+1)
	assert.ErrorIs(t, err, ErrBookingNotYours)
}

func TestCancelRejectedAfterCompletion(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingCompleted)
	_, err := svc.Cancel(b.ID, b.UserID)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestCancelPendingBooking(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingPending)
	cancelled, err := svc.Cancel(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	_, err := svc.Create(&models.BookingSession{
		UserID:             7,
		ScheduledStartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ScheduledEndTime:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrBadBookingWindow)
}

func TestAccessCodeForUnknownBooking(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	_, err := svc.AccessCodeFor(uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAccessCodeForReturnsStoredCode(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestBookingService(store)

	b := seedBooking(store, models.BookingConfirmed)
	code, err := svc.AccessCodeFor(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "428915", code)
}
