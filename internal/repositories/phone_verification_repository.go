package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type PhoneVerificationRepository interface {
	Create(userID int, codeHash string, sentAt, expiresAt time.Time) (int64, error)
	GetLatestByUserID(userID int) (*models.PhoneVerification, error)
	CountRecentSends(userID int, since time.Time) (int, error)
	IncrementAttempts(id int64) (int, error)
	MarkConfirmed(id int64) error
	ExpireNow(id int64) error
}

type phoneVerificationRepository struct {
	DB *sql.DB
}

func NewPhoneVerificationRepository(db *sql.DB) PhoneVerificationRepository {
	return &phoneVerificationRepository{DB: db}
}

// Create - every send is a new row.
func (r *phoneVerificationRepository) Create(userID int, codeHash string, sentAt, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO phone_verifications (user_id, code_hash, sent_at, expires_at, confirmed, attempts)
		VALUES ($1, $2, $3, $4, FALSE, 0)
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRow(q, userID, codeHash, sentAt, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("phone_verification create: %w", err)
	}
	return id, nil
}

func (r *phoneVerificationRepository) GetLatestByUserID(userID int) (*models.PhoneVerification, error) {
	const q = `
		SELECT id, user_id, code_hash, sent_at, expires_at, confirmed, attempts
		FROM phone_verifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, userID)
	var v models.PhoneVerification
	if err := row.Scan(&v.ID, &v.UserID, &v.CodeHash, &v.SentAt, &v.ExpiresAt, &v.Confirmed, &v.Attempts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("phone_verification latest: %w", err)
	}
	return &v, nil
}

// CountRecentSends - sends inside the throttle window.
func (r *phoneVerificationRepository) CountRecentSends(userID int, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM phone_verifications
		WHERE user_id = $1 AND sent_at >= $2
	`
	var c int
	if err := r.DB.QueryRow(q, userID, since).Scan(&c); err != nil {
		return 0, fmt.Errorf("phone_verification count recent: %w", err)
	}
	return c, nil
}

// IncrementAttempts returns the new attempt count.
func (r *phoneVerificationRepository) IncrementAttempts(id int64) (int, error) {
	const q = `
		UPDATE phone_verifications
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("phone_verification increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *phoneVerificationRepository) MarkConfirmed(id int64) error {
	_, err := r.DB.Exec(`UPDATE phone_verifications SET confirmed = TRUE WHERE id = $1`, id)
	return err
}

// ExpireNow kills the code immediately; used when attempts run out.
func (r *phoneVerificationRepository) ExpireNow(id int64) error {
	_, err := r.DB.Exec(`UPDATE phone_verifications SET expires_at = NOW() WHERE id = $1`, id)
	return err
}
