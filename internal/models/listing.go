package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking duration ceilings for private listings.
const (
	DurationHourly    = "hourly"
	DurationDaily     = "daily"
	DurationWeekly    = "weekly"
	DurationMonthly   = "monthly"
	DurationUnlimited = "unlimited"
)

// PrivateParkingListing is a home owner's listing with one or more slots.
type PrivateParkingListing struct {
	ID      uuid.UUID `json:"id"`
	OwnerID int       `json:"owner_id"`

	Title       string  `json:"title"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`

	TotalSlots int `json:"total_slots"`

	HourlyRate          float64  `json:"hourly_rate"`
	DailyRate           float64  `json:"daily_rate"`
	MonthlyRate         float64  `json:"monthly_rate"`
	FlatFullBookingRate *float64 `json:"flat_full_booking_rate,omitempty"`

	AutoAcceptBookings     bool     `json:"auto_accept_bookings"`
	InstantBookingDiscount *float64 `json:"instant_booking_discount,omitempty"`

	HasCCTV          bool `json:"has_cctv"`
	IsCovered        bool `json:"is_covered"`
	HasEVCharging    bool `json:"has_ev_charging"`
	HasSecurityGuard bool `json:"has_security_guard"`
	HasWaterAccess   bool `json:"has_water_access"`

	Is24Hours     bool    `json:"is_24_hours"`
	AvailableFrom *string `json:"available_from,omitempty"` // "HH:MM"
	AvailableTo   *string `json:"available_to,omitempty"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	MaxBookingDuration string `json:"max_booking_duration"`

	SuggestedHourlyRate *float64 `json:"suggested_hourly_rate,omitempty"`

	AvailableSlots int      `json:"available_slots"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxBookingHours converts the duration ceiling to hours. Zero means no cap.
func (l *PrivateParkingListing) MaxBookingHours() float64 {
	switch l.MaxBookingDuration {
	case DurationHourly:
		return 1
	case DurationDaily:
		return 24
	case DurationWeekly:
		return 24 * 7
	case DurationMonthly:
		return 24 * 30
	default:
		return 0
	}
}

type PrivateParkingSlot struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`

	SlotNumber int  `json:"slot_number"`
	IsOccupied bool `json:"is_occupied"`
	IsDisabled bool `json:"is_disabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricingIntelligence is the rate suggestion computed from nearby listings.
type PricingIntelligence struct {
	SuggestedHourlyRate float64 `json:"suggested_hourly_rate"`
	CurrentRate         float64 `json:"current_rate"`
	NearbyListingsCount int     `json:"nearby_listings_count"`
	AvgNearbyRate       float64 `json:"avg_nearby_rate"`
	MinNearbyRate       float64 `json:"min_nearby_rate"`
	MaxNearbyRate       float64 `json:"max_nearby_rate"`
}
