package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type DisputeRepository struct {
	db *sql.DB
}

func NewDisputeRepository(db *sql.DB) *DisputeRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &DisputeRepository{db: db}
}

func (r *DisputeRepository) Create(d *models.DisputeReport) error {
	const q = `
		INSERT INTO dispute_reports (id, booking_id, reason, description, photo_urls, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = models.DisputePending
	}
	if _, err := r.db.Exec(q, d.ID, d.BookingID, d.Reason, d.Description, pq.Array(d.PhotoURLs), d.Status); err != nil {
		return fmt.Errorf("create dispute: %w", err)
	}
	return nil
}

func (r *DisputeRepository) GetByID(id uuid.UUID) (*models.DisputeReport, error) {
	const q = `
		SELECT id, booking_id, reason, description, photo_urls, status, resolution, resolved_at, created_at
		FROM dispute_reports
		WHERE id = $1
	`
	var d models.DisputeReport
	if err := r.db.QueryRow(q, id).Scan(
		&d.ID, &d.BookingID, &d.Reason, &d.Description, pq.Array(&d.PhotoURLs),
		&d.Status, &d.Resolution, &d.ResolvedAt, &d.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispute: %w", err)
	}
	return &d, nil
}

func (r *DisputeRepository) ListByUser(userID, limit, offset int) ([]*models.DisputeReport, error) {
	q := `
		SELECT d.id, d.booking_id, d.reason, d.description, d.photo_urls, d.status, d.resolution, d.resolved_at, d.created_at
		FROM dispute_reports d
		JOIN booking_sessions b ON b.id = d.booking_id
		WHERE b.user_id = $1
		ORDER BY d.created_at DESC
	`
	args := []interface{}{userID}
	if limit > 0 {
		q += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	defer rows.Close()

	var out []*models.DisputeReport
	for rows.Next() {
		var d models.DisputeReport
		if err := rows.Scan(
			&d.ID, &d.BookingID, &d.Reason, &d.Description, pq.Array(&d.PhotoURLs),
			&d.Status, &d.Resolution, &d.ResolvedAt, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dispute: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DisputeRepository) UpdateStatus(id uuid.UUID, status string) error {
	if _, err := r.db.Exec(`UPDATE dispute_reports SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update dispute status: %w", err)
	}
	return nil
}

func (r *DisputeRepository) Resolve(id uuid.UUID, resolution string) error {
	const q = `
		UPDATE dispute_reports
		SET status = 'resolved', resolution = $1, resolved_at = NOW()
		WHERE id = $2
	`
	if _, err := r.db.Exec(q, resolution, id); err != nil {
		return fmt.Errorf("resolve dispute: %w", err)
	}
	return nil
}
