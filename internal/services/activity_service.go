package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrActivityExists = errors.New("session activity already running")

// SessionActivity is the per-session timer/cost tracker behind the lock-screen
// display. It is an explicit object with a start/end lifecycle, created when a
// session starts and disposed when it ends; there is no process-wide singleton.
type SessionActivity struct {
	BookingID  uuid.UUID
	SpotLabel  string
	HourlyRate float64
	StartedAt  time.Time
}

// ActivitySnapshot is one read of a running (or just-ended) activity.
type ActivitySnapshot struct {
	BookingID   uuid.UUID `json:"booking_id"`
	SpotLabel   string    `json:"spot_label"`
	StartedAt   time.Time `json:"started_at"`
	Elapsed     string    `json:"elapsed"`
	ElapsedSecs int64     `json:"elapsed_seconds"`
	RunningCost float64   `json:"running_cost"`
}

type ActivityService struct {
	mu     sync.Mutex
	active map[uuid.UUID]*SessionActivity
	now    func() time.Time
}

func NewActivityService() *ActivityService {
	return &ActivityService{
		active: make(map[uuid.UUID]*SessionActivity),
		now:    time.Now,
	}
}

// SetClock injects a deterministic clock for tests.
func (s *ActivityService) SetClock(now func() time.Time) {
	s.now = now
}

// Start creates the activity for a booking. One per booking at a time.
func (s *ActivityService) Start(bookingID uuid.UUID, spotLabel string, hourlyRate float64) (*SessionActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[bookingID]; ok {
		return nil, ErrActivityExists
	}
	a := &SessionActivity{
		BookingID:  bookingID,
		SpotLabel:  spotLabel,
		HourlyRate: hourlyRate,
		StartedAt:  s.now(),
	}
	s.active[bookingID] = a
	return a, nil
}

// Snapshot reads elapsed time and running cost without mutating anything.
func (s *ActivityService) Snapshot(bookingID uuid.UUID) (*ActivitySnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[bookingID]
	if !ok {
		return nil, false
	}
	return s.snapshot(a), true
}

// End disposes the activity and returns its final reading.
func (s *ActivityService) End(bookingID uuid.UUID) (*ActivitySnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[bookingID]
	if !ok {
		return nil, false
	}
	delete(s.active, bookingID)
	return s.snapshot(a), true
}

func (s *ActivityService) snapshot(a *SessionActivity) *ActivitySnapshot {
	elapsed := s.now().Sub(a.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return &ActivitySnapshot{
		BookingID:   a.BookingID,
		SpotLabel:   a.SpotLabel,
		StartedAt:   a.StartedAt,
		Elapsed:     elapsed.Truncate(time.Second).String(),
		ElapsedSecs: int64(elapsed.Seconds()),
		RunningCost: a.HourlyRate * elapsed.Hours(),
	}
}
