package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type SpotRepository struct {
	db *sql.DB
}

func NewSpotRepository(db *sql.DB) *SpotRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &SpotRepository{db: db}
}

const spotColumns = `id, owner_id, address, latitude, longitude, spot_type,
	price_per_hour, daily_rate, monthly_rate,
	has_cctv, is_covered, has_ev_charging, is_accessible, is_24_hours,
	has_insurance, has_valet_service, has_car_wash, has_security_guard, has_water_access,
	is_occupied, is_disabled, rating, review_count, created_at, updated_at`

func scanSpot(s scanner) (*models.ParkingSpot, error) {
	var sp models.ParkingSpot
	err := s.Scan(
		&sp.ID, &sp.OwnerID, &sp.Address, &sp.Latitude, &sp.Longitude, &sp.SpotType,
		&sp.PricePerHour, &sp.DailyRate, &sp.MonthlyRate,
		&sp.HasCCTV, &sp.IsCovered, &sp.HasEVCharging, &sp.IsAccessible, &sp.Is24Hours,
		&sp.HasInsurance, &sp.HasValetService, &sp.HasCarWash, &sp.HasSecurityGuard, &sp.HasWaterAccess,
		&sp.IsOccupied, &sp.IsDisabled, &sp.Rating, &sp.ReviewCount, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SpotRepository) Create(spot *models.ParkingSpot) error {
	const q = `
		INSERT INTO parking_spots (id, owner_id, address, latitude, longitude, spot_type,
			price_per_hour, daily_rate, monthly_rate,
			has_cctv, is_covered, has_ev_charging, is_accessible, is_24_hours,
			has_insurance, has_valet_service, has_car_wash, has_security_guard, has_water_access,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())
	`
	if spot.ID == uuid.Nil {
		spot.ID = uuid.New()
	}
	_, err := r.db.Exec(q,
		spot.ID, spot.OwnerID, spot.Address, spot.Latitude, spot.Longitude, spot.SpotType,
		spot.PricePerHour, spot.DailyRate, spot.MonthlyRate,
		spot.HasCCTV, spot.IsCovered, spot.HasEVCharging, spot.IsAccessible, spot.Is24Hours,
		spot.HasInsurance, spot.HasValetService, spot.HasCarWash, spot.HasSecurityGuard, spot.HasWaterAccess,
	)
	if err != nil {
		return fmt.Errorf("create parking spot: %w", err)
	}
	return nil
}

func (r *SpotRepository) GetByID(id uuid.UUID) (*models.ParkingSpot, error) {
	row := r.db.QueryRow(`SELECT `+spotColumns+` FROM parking_spots WHERE id = $1`, id)
	sp, err := scanSpot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get parking spot: %w", err)
	}
	return sp, nil
}

func (r *SpotRepository) Update(spot *models.ParkingSpot) error {
	const q = `
		UPDATE parking_spots
		SET address = $1, latitude = $2, longitude = $3, spot_type = $4,
			price_per_hour = $5, daily_rate = $6, monthly_rate = $7,
			is_occupied = $8, is_disabled = $9, updated_at = NOW()
		WHERE id = $10
	`
	if _, err := r.db.Exec(q,
		spot.Address, spot.Latitude, spot.Longitude, spot.SpotType,
		spot.PricePerHour, spot.DailyRate, spot.MonthlyRate,
		spot.IsOccupied, spot.IsDisabled, spot.ID,
	); err != nil {
		return fmt.Errorf("update parking spot: %w", err)
	}
	return nil
}

func (r *SpotRepository) Delete(id uuid.UUID) error {
	if _, err := r.db.Exec(`DELETE FROM parking_spots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete parking spot: %w", err)
	}
	return nil
}

// SpotFilter narrows List; zero values mean "no constraint". Amenity flags
// are require-only: true demands the amenity, false leaves it open.
type SpotFilter struct {
	SpotType      string
	AvailableOnly bool
	MaxPrice      float64
	OwnerID       int
	HasCCTV       bool
	IsCovered     bool
	HasEVCharging bool
	Is24Hours     bool
	Limit         int
	Offset        int
}

func buildSpotListQuery(f SpotFilter) (string, []interface{}) {
	q := `SELECT ` + spotColumns + ` FROM parking_spots WHERE 1=1`
	args := []interface{}{}
	i := 1
	if f.SpotType != "" {
		q += fmt.Sprintf(" AND spot_type = $%d", i)
		args = append(args, f.SpotType)
		i++
	}
	if f.AvailableOnly {
		q += " AND is_occupied = FALSE AND is_disabled = FALSE"
	}
	if f.MaxPrice > 0 {
		q += fmt.Sprintf(" AND price_per_hour <= $%d", i)
		args = append(args, f.MaxPrice)
		i++
	}
	if f.HasCCTV {
		q += " AND has_cctv = TRUE"
	}
	if f.IsCovered {
		q += " AND is_covered = TRUE"
	}
	if f.HasEVCharging {
		q += " AND has_ev_charging = TRUE"
	}
	if f.Is24Hours {
		q += " AND is_24_hours = TRUE"
	}
	if f.OwnerID > 0 {
		q += fmt.Sprintf(" AND owner_id = $%d", i)
		args = append(args, f.OwnerID)
		i++
	}
	q += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, f.Limit, f.Offset)
	}
	return q, args
}

func (r *SpotRepository) List(f SpotFilter) ([]*models.ParkingSpot, error) {
	q, args := buildSpotListQuery(f)
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list parking spots: %w", err)
	}
	defer rows.Close()

	var spots []*models.ParkingSpot
	for rows.Next() {
		sp, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parking spot: %w", err)
		}
		spots = append(spots, sp)
	}
	return spots, rows.Err()
}

func (r *SpotRepository) SetOccupied(id uuid.UUID, occupied bool) error {
	const q = `UPDATE parking_spots SET is_occupied = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.Exec(q, occupied, id); err != nil {
		return fmt.Errorf("set spot occupancy: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}
