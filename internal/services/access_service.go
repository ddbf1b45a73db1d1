package services

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/access"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

var (
	ErrAccessLocked       = errors.New("too many wrong codes, access is locked")
	ErrBookingNotEligible = errors.New("booking is not awaiting entry")
	ErrNoOpenEntry        = errors.New("no open code entry for this booking")
)

// sessionStarter is the slice of the booking service the entry flow needs.
type sessionStarter interface {
	Get(bookingID uuid.UUID, userID int) (*models.BookingSession, error)
	AccessCodeFor(bookingID uuid.UUID) (string, error)
	StartSession(bookingID uuid.UUID) (*models.BookingSession, error)
}

// EntryStatus is what the driver's screen renders after each keypress.
type EntryStatus struct {
	BookingID uuid.UUID `json:"booking_id"`
	State     string    `json:"state"`
	Outcome   string    `json:"outcome"`
	EntryLen  int       `json:"entry_length"`
	Remaining int       `json:"attempts_remaining"`
	Errored   bool      `json:"errored"`
}

// openEntry pins a flow to the driver who opened it so nobody else can feed
// digits into it, dismiss it or read its trail.
type openEntry struct {
	flow    *access.Flow
	ownerID int
}

// AccessService owns one verification flow per booking. A correct code is the
// only way a session starts; lockouts survive the flow being reopened because
// the failure count is read back from the audit trail.
type AccessService struct {
	Bookings sessionStarter
	Attempts repositories.AccessAttemptRepository
	Verifier access.Verifier

	mu    sync.Mutex
	flows map[uuid.UUID]*openEntry
}

func NewAccessService(bookings sessionStarter, attempts repositories.AccessAttemptRepository, v access.Verifier) *AccessService {
	return &AccessService{
		Bookings: bookings,
		Attempts: attempts,
		Verifier: v,
		flows:    make(map[uuid.UUID]*openEntry),
	}
}

// Open presents the code entry for a confirmed booking. Reopening an existing
// entry returns it as is, including a locked one.
func (s *AccessService) Open(bookingID uuid.UUID, userID int) (*EntryStatus, error) {
	b, err := s.Bookings.Get(bookingID, userID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingConfirmed {
		return nil, ErrBookingNotEligible
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.flows[bookingID]; ok {
		return s.status(bookingID, e.flow), nil
	}

	if s.Attempts != nil {
		failures, err := s.Attempts.CountFailures(bookingID)
		if err != nil {
			return nil, err
		}
		if failures >= access.MaxAttempts {
			return nil, ErrAccessLocked
		}
	}

	code, err := s.Bookings.AccessCodeFor(bookingID)
	if err != nil {
		return nil, err
	}

	f, err := access.NewFlow(code, s.Verifier)
	if err != nil {
		// empty or malformed code on a confirmed booking: surface it, do not
		// fall back to anything
		return nil, err
	}

	f.OnSuccess(func() {
		s.record(bookingID, "success", f.Remaining())
		if _, err := s.Bookings.StartSession(bookingID); err != nil {
			log.Printf("[access][verify] start session for %s failed: %v", bookingID, err)
		}
	})
	f.OnMismatch(func(remaining int) {
		s.record(bookingID, "failure", remaining)
	})
	f.OnLocked(func() {
		s.record(bookingID, "failure", 0)
		s.record(bookingID, "locked", 0)
	})

	s.flows[bookingID] = &openEntry{flow: f, ownerID: userID}
	return s.status(bookingID, f), nil
}

// Press feeds one digit. The sixth digit submits before Press returns, so the
// returned status already reflects the verification outcome.
func (s *AccessService) Press(bookingID uuid.UUID, userID int, digit byte) (*EntryStatus, error) {
	f, err := s.flow(bookingID, userID)
	if err != nil {
		return nil, err
	}
	f.Append(digit)
	return s.status(bookingID, f), nil
}

// Enter feeds a whole code, digit by digit.
func (s *AccessService) Enter(bookingID uuid.UUID, userID int, code string) (*EntryStatus, error) {
	f, err := s.flow(bookingID, userID)
	if err != nil {
		return nil, err
	}
	f.Enter(code)
	return s.status(bookingID, f), nil
}

// DeleteLast removes the last entered digit.
func (s *AccessService) DeleteLast(bookingID uuid.UUID, userID int) (*EntryStatus, error) {
	f, err := s.flow(bookingID, userID)
	if err != nil {
		return nil, err
	}
	f.DeleteLast()
	return s.status(bookingID, f), nil
}

// Status reads the current entry state without touching it.
func (s *AccessService) Status(bookingID uuid.UUID, userID int) (*EntryStatus, error) {
	f, err := s.flow(bookingID, userID)
	if err != nil {
		return nil, err
	}
	return s.status(bookingID, f), nil
}

// Dismiss abandons the entry. Any in-flight verification is cancelled and its
// attempt is not consumed. Dismissing when nothing is open is a no-op.
func (s *AccessService) Dismiss(bookingID uuid.UUID, userID int) error {
	s.mu.Lock()
	e, ok := s.flows[bookingID]
	if ok && e.ownerID != userID {
		s.mu.Unlock()
		return ErrBookingNotYours
	}
	delete(s.flows, bookingID)
	s.mu.Unlock()
	if ok {
		e.flow.Dismiss()
	}
	return nil
}

// AuditTrail lists every recorded entry attempt for the caller's booking.
func (s *AccessService) AuditTrail(bookingID uuid.UUID, userID int) ([]*models.AccessAttempt, error) {
	if _, err := s.Bookings.Get(bookingID, userID); err != nil {
		return nil, err
	}
	if s.Attempts == nil {
		return nil, nil
	}
	return s.Attempts.ListByBooking(bookingID)
}

func (s *AccessService) flow(bookingID uuid.UUID, userID int) (*access.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.flows[bookingID]
	if !ok {
		return nil, ErrNoOpenEntry
	}
	if e.ownerID != userID {
		return nil, ErrBookingNotYours
	}
	return e.flow, nil
}

func (s *AccessService) status(bookingID uuid.UUID, f *access.Flow) *EntryStatus {
	return &EntryStatus{
		BookingID: bookingID,
		State:     f.State().String(),
		Outcome:   f.Outcome().String(),
		EntryLen:  f.EntryLen(),
		Remaining: f.Remaining(),
		Errored:   f.Errored(),
	}
}

func (s *AccessService) record(bookingID uuid.UUID, outcome string, remaining int) {
	if s.Attempts == nil {
		return
	}
	if err := s.Attempts.Record(bookingID, outcome, remaining); err != nil {
		log.Printf("[access][audit] failed to record attempt for %s: %v", bookingID, err)
	}
}
