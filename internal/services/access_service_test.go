package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/access"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type fakeSessionStarter struct {
	booking *models.BookingSession
	starts  int
}

func (f *fakeSessionStarter) Get(bookingID uuid.UUID, userID int) (*models.BookingSession, error) {
	if f.booking == nil || f.booking.ID != bookingID {
		return nil, ErrBookingNotFound
	}
	if f.booking.UserID != userID {
		return nil, ErrBookingNotYours
	}
	return f.booking, nil
}

func (f *fakeSessionStarter) AccessCodeFor(bookingID uuid.UUID) (string, error) {
	return f.booking.AccessCode, nil
}

func (f *fakeSessionStarter) StartSession(bookingID uuid.UUID) (*models.BookingSession, error) {
	f.starts++
	f.booking.Status = models.BookingActive
	return f.booking, nil
}

type fakeAttemptRepo struct {
	rows []*models.AccessAttempt
}

func (r *fakeAttemptRepo) Record(bookingID uuid.UUID, outcome string, remaining int) error {
	r.rows = append(r.rows, &models.AccessAttempt{
		BookingID: bookingID,
		Outcome:   outcome,
		Remaining: remaining,
	})
	return nil
}

func (r *fakeAttemptRepo) ListByBooking(bookingID uuid.UUID) ([]*models.AccessAttempt, error) {
	return r.rows, nil
}

func (r *fakeAttemptRepo) CountFailures(bookingID uuid.UUID) (int, error) {
	n := 0
	for _, a := range r.rows {
		if a.Outcome == "failure" {
			n++
		}
	}
	return n, nil
}

func newAccessFixture(code string) (*AccessService, *fakeSessionStarter, *fakeAttemptRepo, *models.BookingSession) {
	b := &models.BookingSession{
		ID:         uuid.New(),
		UserID:     7,
		Status:     models.BookingConfirmed,
		AccessCode: code,
	}
	starter := &fakeSessionStarter{booking: b}
	attempts := &fakeAttemptRepo{}
	svc := NewAccessService(starter, attempts, access.InstantVerifier{})
	return svc, starter, attempts, b
}

func TestAccessOpenRequiresConfirmedBooking(t *testing.T) {
	svc, starter, _, b := newAccessFixture("428915")
	starter.booking.Status = models.BookingPending

	_, err := svc.Open(b.ID, b.UserID)
	assert.ErrorIs(t, err, ErrBookingNotEligible)
}

func TestAccessOpenRejectsForeignBooking(t *testing.T) {
	svc, _, _, b := newAccessFixture("428915")
	_, err := svc.Open(b.ID, 99)
	assert.ErrorIs(t, err, ErrBookingNotYours)
}

func TestAccessOpenFailsWithoutProvisionedCode(t *testing.T) {
	svc, _, _, b := newAccessFixture("")
	_, err := svc.Open(b.ID, b.UserID)
	assert.ErrorIs(t, err, access.ErrNoAccessCode)
}

func TestAccessCorrectCodeStartsSessionOnce(t *testing.T) {
	svc, starter, attempts, b := newAccessFixture("428915")

	status, err := svc.Open(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, "entering", status.State)
	assert.Equal(t, 3, status.Remaining)

	status, err = svc.Enter(b.ID, b.UserID, "428915")
	require.NoError(t, err)
	assert.Equal(t, "success", status.State)
	assert.Equal(t, 1, starter.starts)

	require.Len(t, attempts.rows, 1)
	assert.Equal(t, "success", attempts.rows[0].Outcome)

	// feeding more digits after success does nothing
	status, err = svc.Enter(b.ID, b.UserID, "428915")
	require.NoError(t, err)
	assert.Equal(t, "success", status.State)
	assert.Equal(t, 1, starter.starts)
}

func TestAccessMismatchRecordsFailure(t *testing.T) {
	svc, starter, attempts, b := newAccessFixture("428915")

	_, err := svc.Open(b.ID, b.UserID)
	require.NoError(t, err)

	status, err := svc.Enter(b.ID, b.UserID, "111111")
	require.NoError(t, err)
	assert.Equal(t, "entering", status.State)
	assert.Equal(t, "failure", status.Outcome)
	assert.Equal(t, 2, status.Remaining)
	assert.Equal(t, 0, status.EntryLen)
	assert.True(t, status.Errored)
	assert.Equal(t, 0, starter.starts)

	require.Len(t, attempts.rows, 1)
	assert.Equal(t, "failure", attempts.rows[0].Outcome)
	assert.Equal(t, 2, attempts.rows[0].Remaining)
}

func TestAccessLockoutPersistsAcrossReopen(t *testing.T) {
	svc, starter, attempts, b := newAccessFixture("428915")

	_, err := svc.Open(b.ID, b.UserID)
	require.NoError(t, err)

	for _, wrong := range []string{"000000", "111111", "222222"} {
		_, err = svc.Enter(b.ID, b.UserID, wrong)
		require.NoError(t, err)
	}

	status, err := svc.Status(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, "locked", status.State)
	assert.Equal(t, 0, status.Remaining)
	assert.Equal(t, 0, starter.starts)

	// the right code is ignored once locked
	status, err = svc.Enter(b.ID, b.UserID, "428915")
	require.NoError(t, err)
	assert.Equal(t, "locked", status.State)

	// three failures are on record; a fresh keypad stays locked out
	svc.Dismiss(b.ID, b.UserID)
	_, err = svc.Open(b.ID, b.UserID)
	assert.ErrorIs(t, err, ErrAccessLocked)

	n, err := attempts.CountFailures(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAccessPressWithoutOpenEntry(t *testing.T) {
	svc, _, _, b := newAccessFixture("428915")
	_, err := svc.Press(b.ID, b.UserID, '4')
	assert.ErrorIs(t, err, ErrNoOpenEntry)
}

func TestAccessDeleteLastEditsEntry(t *testing.T) {
	svc, _, _, b := newAccessFixture("428915")

	_, err := svc.Open(b.ID, b.UserID)
	require.NoError(t, err)

	_, err = svc.Enter(b.ID, b.UserID, "4289")
	require.NoError(t, err)

	status, err := svc.DeleteLast(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.EntryLen)

	status, err = svc.Enter(b.ID, b.UserID, "915")
	require.NoError(t, err)
	assert.Equal(t, "success", status.State)
}

func TestAccessKeypadIsOwnerOnly(t *testing.T) {
	svc, starter, attempts, b := newAccessFixture("428915")

	_, err := svc.Open(b.ID, b.UserID)
	require.NoError(t, err)

	// another authenticated user who knows the booking id gets nowhere
	const stranger = 99
	_, err = svc.Press(b.ID, stranger, '0')
	assert.ErrorIs(t, err, ErrBookingNotYours)
	_, err = svc.Enter(b.ID, stranger, "000000")
	assert.ErrorIs(t, err, ErrBookingNotYours)
	_, err = svc.DeleteLast(b.ID, stranger)
	assert.ErrorIs(t, err, ErrBookingNotYours)
	_, err = svc.Status(b.ID, stranger)
	assert.ErrorIs(t, err, ErrBookingNotYours)
	err = svc.Dismiss(b.ID, stranger)
	assert.ErrorIs(t, err, ErrBookingNotYours)
	_, err = svc.AuditTrail(b.ID, stranger)
	assert.ErrorIs(t, err, ErrBookingNotYours)

	// no attempt was burned and the owner's entry is untouched
	assert.Empty(t, attempts.rows)
	status, err := svc.Status(b.ID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.EntryLen)
	assert.Equal(t, 3, status.Remaining)

	status, err = svc.Enter(b.ID, b.UserID, "428915")
	require.NoError(t, err)
	assert.Equal(t, "success", status.State)
	assert.Equal(t, 1, starter.starts)
}

func TestAccessDismissForgetsTheFlow(t *testing.T) {
	svc, _, _, b := newAccessFixture("428915")

	_, err := svc.Open(b.ID, b.UserID)
	require.NoError(t, err)

	svc.Dismiss(b.ID, b.UserID)
	_, err = svc.Status(b.ID, b.UserID)
	assert.ErrorIs(t, err, ErrNoOpenEntry)
}
