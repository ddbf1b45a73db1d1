package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type FacilityRepository struct {
	db *sql.DB
}

func NewFacilityRepository(db *sql.DB) *FacilityRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &FacilityRepository{db: db}
}

const facilityColumns = `f.id, f.owner_id, f.name, f.address, f.latitude, f.longitude, f.facility_type,
	f.default_hourly_rate, f.flat_day_rate,
	f.has_cctv, f.has_ev_charging, f.has_valet_service, f.has_car_wash, f.is_24_hours,
	f.rating, f.review_count, f.created_at, f.updated_at`

func scanFacility(s scanner) (*models.CommercialParkingFacility, error) {
	var f models.CommercialParkingFacility
	err := s.Scan(
		&f.ID, &f.OwnerID, &f.Name, &f.Address, &f.Latitude, &f.Longitude, &f.FacilityType,
		&f.DefaultHourlyRate, &f.FlatDayRate,
		&f.HasCCTV, &f.HasEVCharging, &f.HasValetService, &f.HasCarWash, &f.Is24Hours,
		&f.Rating, &f.ReviewCount, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FacilityRepository) Create(f *models.CommercialParkingFacility) error {
	const q = `
		INSERT INTO commercial_parking_facilities (id, owner_id, name, address, latitude, longitude, facility_type,
			default_hourly_rate, flat_day_rate,
			has_cctv, has_ev_charging, has_valet_service, has_car_wash, is_24_hours,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	_, err := r.db.Exec(q,
		f.ID, f.OwnerID, f.Name, f.Address, f.Latitude, f.Longitude, f.FacilityType,
		f.DefaultHourlyRate, f.FlatDayRate,
		f.HasCCTV, f.HasEVCharging, f.HasValetService, f.HasCarWash, f.Is24Hours,
	)
	if err != nil {
		return fmt.Errorf("create facility: %w", err)
	}
	return nil
}

func (r *FacilityRepository) GetByID(id uuid.UUID) (*models.CommercialParkingFacility, error) {
	row := r.db.QueryRow(`SELECT `+facilityColumns+` FROM commercial_parking_facilities f WHERE f.id = $1`, id)
	f, err := scanFacility(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get facility: %w", err)
	}
	return f, nil
}

func (r *FacilityRepository) List(facilityType string, ownerID, limit, offset int) ([]*models.CommercialParkingFacility, error) {
	q := `SELECT ` + facilityColumns + ` FROM commercial_parking_facilities f WHERE 1=1`
	args := []interface{}{}
	i := 1
	if facilityType != "" {
		q += fmt.Sprintf(" AND f.facility_type = $%d", i)
		args = append(args, facilityType)
		i++
	}
	if ownerID > 0 {
		q += fmt.Sprintf(" AND f.owner_id = $%d", i)
		args = append(args, ownerID)
		i++
	}
	q += " ORDER BY f.created_at DESC"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var out []*models.CommercialParkingFacility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FacilityRepository) Delete(id uuid.UUID) error {
	if _, err := r.db.Exec(`DELETE FROM commercial_parking_facilities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete facility: %w", err)
	}
	return nil
}

// SlotCounts fills TotalSlots/AvailableSlots for a facility.
func (r *FacilityRepository) SlotCounts(facilityID uuid.UUID) (total, available int, err error) {
	const q = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE is_occupied = FALSE AND is_disabled = FALSE)
		FROM commercial_parking_slots
		WHERE facility_id = $1
	`
	if err := r.db.QueryRow(q, facilityID).Scan(&total, &available); err != nil {
		return 0, 0, fmt.Errorf("facility slot counts: %w", err)
	}
	return total, available, nil
}

// SlotFilter narrows ListSlots.
type SlotFilter struct {
	Floor         int
	SlotType      string
	AvailableOnly bool
}

func (r *FacilityRepository) ListSlots(facilityID uuid.UUID, f SlotFilter) ([]*models.CommercialParkingSlot, error) {
	q := `
		SELECT id, facility_id, slot_number, floor, slot_type, is_occupied, is_disabled, created_at, updated_at
		FROM commercial_parking_slots
		WHERE facility_id = $1`
	args := []interface{}{facilityID}
	i := 2
	if f.Floor > 0 {
		q += fmt.Sprintf(" AND floor = $%d", i)
		args = append(args, f.Floor)
		i++
	}
	if f.SlotType != "" {
		q += fmt.Sprintf(" AND slot_type = $%d", i)
		args = append(args, f.SlotType)
		i++
	}
	if f.AvailableOnly {
		q += " AND is_occupied = FALSE AND is_disabled = FALSE"
	}
	q += " ORDER BY floor, slot_number"

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []*models.CommercialParkingSlot
	for rows.Next() {
		var s models.CommercialParkingSlot
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.SlotNumber, &s.Floor, &s.SlotType,
			&s.IsOccupied, &s.IsDisabled, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *FacilityRepository) CountSlotsOnFloor(facilityID uuid.UUID, floor int) (int, error) {
	var c int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM commercial_parking_slots WHERE facility_id = $1 AND floor = $2`,
		facilityID, floor,
	).Scan(&c)
	return c, err
}

// CreateSlots bulk-inserts numbered slots on one floor.
func (r *FacilityRepository) CreateSlots(slots []*models.CommercialParkingSlot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("create slots begin: %w", err)
	}
	const q = `
		INSERT INTO commercial_parking_slots (id, facility_id, slot_number, floor, slot_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	for _, s := range slots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if _, err := tx.Exec(q, s.ID, s.FacilityID, s.SlotNumber, s.Floor, s.SlotType); err != nil {
			tx.Rollback()
			return fmt.Errorf("create slot %s: %w", s.SlotNumber, err)
		}
	}
	return tx.Commit()
}

func (r *FacilityRepository) GetSlot(id uuid.UUID) (*models.CommercialParkingSlot, error) {
	const q = `
		SELECT id, facility_id, slot_number, floor, slot_type, is_occupied, is_disabled, created_at, updated_at
		FROM commercial_parking_slots WHERE id = $1
	`
	var s models.CommercialParkingSlot
	if err := r.db.QueryRow(q, id).Scan(&s.ID, &s.FacilityID, &s.SlotNumber, &s.Floor, &s.SlotType,
		&s.IsOccupied, &s.IsDisabled, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return &s, nil
}

func (r *FacilityRepository) SetSlotOccupied(id uuid.UUID, occupied bool) error {
	const q = `UPDATE commercial_parking_slots SET is_occupied = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.Exec(q, occupied, id); err != nil {
		return fmt.Errorf("set slot occupancy: %w", err)
	}
	return nil
}
