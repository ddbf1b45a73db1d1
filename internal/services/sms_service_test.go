package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/utils"
)

type fakeVerificationRepo struct {
	rows   []*models.PhoneVerification
	nextID int64
}

func (r *fakeVerificationRepo) Create(userID int, codeHash string, sentAt, expiresAt time.Time) (int64, error) {
	r.nextID++
	r.rows = append(r.rows, &models.PhoneVerification{
		ID:        r.nextID,
		UserID:    userID,
		CodeHash:  codeHash,
		SentAt:    sentAt,
		ExpiresAt: expiresAt,
	})
	return r.nextID, nil
}

func (r *fakeVerificationRepo) GetLatestByUserID(userID int) (*models.PhoneVerification, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			return r.rows[i], nil
		}
	}
	return nil, nil
}

func (r *fakeVerificationRepo) CountRecentSends(userID int, since time.Time) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.UserID == userID && !row.SentAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeVerificationRepo) IncrementAttempts(id int64) (int, error) {
	for _, row := range r.rows {
		if row.ID == id {
			row.Attempts++
			return row.Attempts, nil
		}
	}
	return 0, nil
}

func (r *fakeVerificationRepo) MarkConfirmed(id int64) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Confirmed = true
		}
	}
	return nil
}

func (r *fakeVerificationRepo) ExpireNow(id int64) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.ExpiresAt = time.Now().Add(-time.Second)
		}
	}
	return nil
}

func newTestSMSService(repo *fakeVerificationRepo) *SMSService {
	client := utils.NewSMSClient("", "TEST", true) // dry run, nothing leaves the process
	return NewSMSService(repo, nil, client)
}

func seedVerification(repo *fakeVerificationRepo, userID int, code string, ttl time.Duration) *models.PhoneVerification {
	hash, _ := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	id, _ := repo.Create(userID, string(hash), time.Now(), time.Now().Add(ttl))
	return repo.rows[id-1]
}

func TestSendVerificationSMSThrottlesAfterThreeSends(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := newTestSMSService(repo)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.SendVerificationSMS(1, "+910000000001"))
	}
	err := svc.SendVerificationSMS(1, "+910000000001")
	assert.ErrorIs(t, err, ErrResendThrottled)

	// a different user is unaffected
	assert.NoError(t, svc.SendVerificationSMS(2, "+910000000002"))
}

func TestConfirmVerificationCodeHappyPath(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := newTestSMSService(repo)
	seedVerification(repo, 1, "482915", time.Minute)

	ok, err := svc.ConfirmVerificationCode(1, "482915")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, repo.rows[0].Confirmed)
}

func TestConfirmVerificationCodeWrongCode(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := newTestSMSService(repo)
	seedVerification(repo, 1, "482915", time.Minute)

	ok, err := svc.ConfirmVerificationCode(1, "000000")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCodeInvalid)
	assert.Equal(t, 1, repo.rows[0].Attempts)
}

func TestConfirmVerificationCodeExpired(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := newTestSMSService(repo)
	seedVerification(repo, 1, "482915", -time.Minute)

	ok, err := svc.ConfirmVerificationCode(1, "482915")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestConfirmVerificationCodeLocksAfterMaxAttempts(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := newTestSMSService(repo)
	seedVerification(repo, 1, "482915", time.Minute)

	var err error
	for i := 0; i < maxConfirmAttempts; i++ {
		_, err = svc.ConfirmVerificationCode(1, "000000")
	}
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// the code row was expired on lockout, so even the right code is dead
	_, err = svc.ConfirmVerificationCode(1, "482915")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestGenerateDigitCodeShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := generateDigitCode(6)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}
