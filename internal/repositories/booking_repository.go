package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, spot_id, spot_type, booking_time,
	scheduled_start_time, actual_start_time, scheduled_end_time, actual_end_time,
	duration_hours, total_cost, overstay_fee, status, access_code, created_at, updated_at`

func scanBooking(s scanner) (*models.BookingSession, error) {
	var b models.BookingSession
	var code sql.NullString
	err := s.Scan(
		&b.ID, &b.UserID, &b.SpotID, &b.SpotType, &b.BookingTime,
		&b.ScheduledStartTime, &b.ActualStartTime, &b.ScheduledEndTime, &b.ActualEndTime,
		&b.DurationHours, &b.TotalCost, &b.OverstayFee, &b.Status, &code, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.AccessCode = code.String
	return &b, nil
}

func (r *BookingRepository) Create(b *models.BookingSession) error {
	const q = `
		INSERT INTO booking_sessions (id, user_id, spot_id, spot_type, booking_time,
			scheduled_start_time, scheduled_end_time, duration_hours, total_cost, status, access_code,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6, $7, $8, $9, NULLIF($10, ''), NOW(), NOW())
	`
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := r.db.Exec(q,
		b.ID, b.UserID, b.SpotID, b.SpotType,
		b.ScheduledStartTime, b.ScheduledEndTime, b.DurationHours, b.TotalCost, b.Status, b.AccessCode,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(id uuid.UUID) (*models.BookingSession, error) {
	row := r.db.QueryRow(`SELECT `+bookingColumns+` FROM booking_sessions WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(b *models.BookingSession) error {
	const q = `
		UPDATE booking_sessions
		SET actual_start_time = $1, actual_end_time = $2, status = $3,
			overstay_fee = $4, total_cost = $5, access_code = NULLIF($6, ''), updated_at = NOW()
		WHERE id = $7
	`
	if _, err := r.db.Exec(q,
		b.ActualStartTime, b.ActualEndTime, b.Status, b.OverstayFee, b.TotalCost, b.AccessCode, b.ID,
	); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) ListByUser(userID int, statuses []string, limit, offset int) ([]*models.BookingSession, error) {
	q := `SELECT ` + bookingColumns + ` FROM booking_sessions WHERE user_id = $1`
	args := []interface{}{userID}
	i := 2
	if len(statuses) > 0 {
		q += fmt.Sprintf(" AND status = ANY($%d)", i)
		args = append(args, pq.Array(statuses))
		i++
	}
	q += " ORDER BY booking_time DESC"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []*models.BookingSession
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListBySpots - bookings for a set of spot ids (host view).
func (r *BookingRepository) ListBySpots(spotIDs []uuid.UUID, limit, offset int) ([]*models.BookingSession, error) {
	if len(spotIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(spotIDs))
	for i, id := range spotIDs {
		ids[i] = id.String()
	}
	q := `SELECT ` + bookingColumns + ` FROM booking_sessions WHERE spot_id = ANY($1) ORDER BY booking_time DESC`
	args := []interface{}{pq.Array(ids)}
	if limit > 0 {
		q += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings by spots: %w", err)
	}
	defer rows.Close()

	var out []*models.BookingSession
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// HostSummary aggregates completed revenue and counts over a host's spots.
func (r *BookingRepository) HostSummary(spotIDs []uuid.UUID) (total int, completed int, revenue float64, err error) {
	if len(spotIDs) == 0 {
		return 0, 0, 0, nil
	}
	ids := make([]string, len(spotIDs))
	for i, id := range spotIDs {
		ids[i] = id.String()
	}
	const q = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(total_cost) FILTER (WHERE status = 'completed'), 0)
		FROM booking_sessions
		WHERE spot_id = ANY($1)
	`
	if err := r.db.QueryRow(q, pq.Array(ids)).Scan(&total, &completed, &revenue); err != nil {
		return 0, 0, 0, fmt.Errorf("host summary: %w", err)
	}
	return total, completed, revenue, nil
}
