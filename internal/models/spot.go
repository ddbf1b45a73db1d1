package models

import (
	"time"

	"github.com/google/uuid"
)

// Spot types as listed by the marketplace.
const (
	SpotTypeMall            = "mall"
	SpotTypePrivateDriveway = "private_driveway"
	SpotTypeOffice          = "office"
	SpotTypeApartment       = "apartment"
	SpotTypeHospital        = "hospital"
	SpotTypeAirport         = "airport"
	SpotTypeStadium         = "stadium"
)

// ParkingSpot is a standalone spot listed directly by its owner.
// There is deliberately no per-spot PIN here: access codes belong to the
// booking session that grants entry.
type ParkingSpot struct {
	ID      uuid.UUID `json:"id"`
	OwnerID int       `json:"owner_id"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SpotType  string  `json:"spot_type"`

	PricePerHour float64  `json:"price_per_hour"`
	DailyRate    *float64 `json:"daily_rate,omitempty"`
	MonthlyRate  *float64 `json:"monthly_rate,omitempty"`

	HasCCTV          bool `json:"has_cctv"`
	IsCovered        bool `json:"is_covered"`
	HasEVCharging    bool `json:"has_ev_charging"`
	IsAccessible     bool `json:"is_accessible"`
	Is24Hours        bool `json:"is_24_hours"`
	HasInsurance     bool `json:"has_insurance"`
	HasValetService  bool `json:"has_valet_service"`
	HasCarWash       bool `json:"has_car_wash"`
	HasSecurityGuard bool `json:"has_security_guard"`
	HasWaterAccess   bool `json:"has_water_access"`

	IsOccupied  bool    `json:"is_occupied"`
	IsDisabled  bool    `json:"is_disabled"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	// set only when the caller searched by location
	DistanceMeters *float64 `json:"distance_meters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
