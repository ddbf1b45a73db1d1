package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ListingRepository{db: db}
}

const listingColumns = `id, owner_id, title, address, latitude, longitude, description, total_slots,
	hourly_rate, daily_rate, monthly_rate, flat_full_booking_rate,
	auto_accept_bookings, instant_booking_discount,
	has_cctv, is_covered, has_ev_charging, has_security_guard, has_water_access,
	is_24_hours, available_from, available_to,
	rating, review_count, max_booking_duration, suggested_hourly_rate,
	created_at, updated_at`

func scanListing(s scanner) (*models.PrivateParkingListing, error) {
	var l models.PrivateParkingListing
	err := s.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Address, &l.Latitude, &l.Longitude, &l.Description, &l.TotalSlots,
		&l.HourlyRate, &l.DailyRate, &l.MonthlyRate, &l.FlatFullBookingRate,
		&l.AutoAcceptBookings, &l.InstantBookingDiscount,
		&l.HasCCTV, &l.IsCovered, &l.HasEVCharging, &l.HasSecurityGuard, &l.HasWaterAccess,
		&l.Is24Hours, &l.AvailableFrom, &l.AvailableTo,
		&l.Rating, &l.ReviewCount, &l.MaxBookingDuration, &l.SuggestedHourlyRate,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Create(l *models.PrivateParkingListing) error {
	const q = `
		INSERT INTO private_parking_listings (id, owner_id, title, address, latitude, longitude, description,
			total_slots, hourly_rate, daily_rate, monthly_rate, flat_full_booking_rate,
			auto_accept_bookings, instant_booking_discount,
			has_cctv, is_covered, has_ev_charging, has_security_guard, has_water_access,
			is_24_hours, available_from, available_to, max_booking_duration,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
	`
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.TotalSlots <= 0 {
		l.TotalSlots = 1
	}
	if l.MaxBookingDuration == "" {
		l.MaxBookingDuration = models.DurationUnlimited
	}
	_, err := r.db.Exec(q,
		l.ID, l.OwnerID, l.Title, l.Address, l.Latitude, l.Longitude, l.Description,
		l.TotalSlots, l.HourlyRate, l.DailyRate, l.MonthlyRate, l.FlatFullBookingRate,
		l.AutoAcceptBookings, l.InstantBookingDiscount,
		l.HasCCTV, l.IsCovered, l.HasEVCharging, l.HasSecurityGuard, l.HasWaterAccess,
		l.Is24Hours, l.AvailableFrom, l.AvailableTo, l.MaxBookingDuration,
	)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(id uuid.UUID) (*models.PrivateParkingListing, error) {
	row := r.db.QueryRow(`SELECT `+listingColumns+` FROM private_parking_listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (r *ListingRepository) Update(l *models.PrivateParkingListing) error {
	const q = `
		UPDATE private_parking_listings
		SET title = $1, description = $2, hourly_rate = $3, daily_rate = $4, monthly_rate = $5,
			auto_accept_bookings = $6, max_booking_duration = $7, updated_at = NOW()
		WHERE id = $8
	`
	if _, err := r.db.Exec(q,
		l.Title, l.Description, l.HourlyRate, l.DailyRate, l.MonthlyRate,
		l.AutoAcceptBookings, l.MaxBookingDuration, l.ID,
	); err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) Delete(id uuid.UUID) error {
	if _, err := r.db.Exec(`DELETE FROM private_parking_listings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// ListingFilter narrows List; zero values mean "no constraint". Amenity
// flags are require-only; AvailableOnly keeps listings with a free slot.
type ListingFilter struct {
	OwnerID       int
	MaxHourlyRate float64
	AvailableOnly bool
	HasCCTV       bool
	IsCovered     bool
	HasEVCharging bool
	Is24Hours     bool
	Limit         int
	Offset        int
}

func buildListingListQuery(f ListingFilter) (string, []interface{}) {
	q := `SELECT ` + listingColumns + ` FROM private_parking_listings WHERE 1=1`
	args := []interface{}{}
	i := 1
	if f.OwnerID > 0 {
		q += fmt.Sprintf(" AND owner_id = $%d", i)
		args = append(args, f.OwnerID)
		i++
	}
	if f.MaxHourlyRate > 0 {
		q += fmt.Sprintf(" AND hourly_rate <= $%d", i)
		args = append(args, f.MaxHourlyRate)
		i++
	}
	if f.AvailableOnly {
		q += ` AND EXISTS (
			SELECT 1 FROM private_parking_slots s
			WHERE s.listing_id = private_parking_listings.id
			  AND s.is_occupied = FALSE AND s.is_disabled = FALSE)`
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
	q += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, f.Limit, f.Offset)
	}
	return q, args
}

func (r *ListingRepository) List(f ListingFilter) ([]*models.PrivateParkingListing, error) {
	q, args := buildListingListQuery(f)
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []*models.PrivateParkingListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListAll returns every listing; the pricing service filters by distance
// in memory, matching how the original computed nearby rates.
func (r *ListingRepository) ListAll() ([]*models.PrivateParkingListing, error) {
	return r.List(ListingFilter{})
}

func (r *ListingRepository) UpdateSuggestedRate(id uuid.UUID, rate float64) error {
	const q = `UPDATE private_parking_listings SET suggested_hourly_rate = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.Exec(q, rate, id); err != nil {
		return fmt.Errorf("update suggested rate: %w", err)
	}
	return nil
}

func (r *ListingRepository) OccupiedSlotCount(listingID uuid.UUID) (int, error) {
	var c int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM private_parking_slots WHERE listing_id = $1 AND is_occupied = TRUE`,
		listingID,
	).Scan(&c)
	if err != nil {
		return 0, fmt.Errorf("occupied slot count: %w", err)
	}
	return c, nil
}

func (r *ListingRepository) CreateSlot(s *models.PrivateParkingSlot) error {
	const q = `
		INSERT INTO private_parking_slots (id, listing_id, slot_number, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if _, err := r.db.Exec(q, s.ID, s.ListingID, s.SlotNumber); err != nil {
		return fmt.Errorf("create private slot: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetSlot(id uuid.UUID) (*models.PrivateParkingSlot, error) {
	const q = `
		SELECT id, listing_id, slot_number, is_occupied, is_disabled, created_at, updated_at
		FROM private_parking_slots WHERE id = $1
	`
	var s models.PrivateParkingSlot
	if err := r.db.QueryRow(q, id).Scan(&s.ID, &s.ListingID, &s.SlotNumber,
		&s.IsOccupied, &s.IsDisabled, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get private slot: %w", err)
	}
	return &s, nil
}

func (r *ListingRepository) ListSlots(listingID uuid.UUID) ([]*models.PrivateParkingSlot, error) {
	const q = `
		SELECT id, listing_id, slot_number, is_occupied, is_disabled, created_at, updated_at
		FROM private_parking_slots WHERE listing_id = $1
		ORDER BY slot_number
	`
	rows, err := r.db.Query(q, listingID)
	if err != nil {
		return nil, fmt.Errorf("list private slots: %w", err)
	}
	defer rows.Close()

	var out []*models.PrivateParkingSlot
	for rows.Next() {
		var s models.PrivateParkingSlot
		if err := rows.Scan(&s.ID, &s.ListingID, &s.SlotNumber,
			&s.IsOccupied, &s.IsDisabled, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan private slot: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *ListingRepository) SetSlotOccupied(id uuid.UUID, occupied bool) error {
	const q = `UPDATE private_parking_slots SET is_occupied = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.Exec(q, occupied, id); err != nil {
		return fmt.Errorf("set private slot occupancy: %w", err)
	}
	return nil
}
