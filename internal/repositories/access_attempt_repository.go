package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type AccessAttemptRepository interface {
	Record(bookingID uuid.UUID, outcome string, remaining int) error
	ListByBooking(bookingID uuid.UUID) ([]*models.AccessAttempt, error)
	CountFailures(bookingID uuid.UUID) (int, error)
}

type accessAttemptRepository struct {
	DB *sql.DB
}

func NewAccessAttemptRepository(db *sql.DB) AccessAttemptRepository {
	return &accessAttemptRepository{DB: db}
}

// Record appends one audit row per code entry; the digits themselves are
// never stored.
func (r *accessAttemptRepository) Record(bookingID uuid.UUID, outcome string, remaining int) error {
	const q = `
		INSERT INTO access_attempts (booking_id, outcome, remaining, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := r.DB.Exec(q, bookingID, outcome, remaining); err != nil {
		return fmt.Errorf("record access attempt: %w", err)
	}
	return nil
}

func (r *accessAttemptRepository) ListByBooking(bookingID uuid.UUID) ([]*models.AccessAttempt, error) {
	const q = `
		SELECT id, booking_id, outcome, remaining, created_at
		FROM access_attempts
		WHERE booking_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.Query(q, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list access attempts: %w", err)
	}
	defer rows.Close()

	var out []*models.AccessAttempt
	for rows.Next() {
		var a models.AccessAttempt
		if err := rows.Scan(&a.ID, &a.BookingID, &a.Outcome, &a.Remaining, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan access attempt: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *accessAttemptRepository) CountFailures(bookingID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM access_attempts WHERE booking_id = $1 AND outcome = 'failure'`
	var c int
	if err := r.DB.QueryRow(q, bookingID).Scan(&c); err != nil {
		return 0, fmt.Errorf("count access failures: %w", err)
	}
	return c, nil
}
