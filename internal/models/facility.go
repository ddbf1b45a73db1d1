package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SlotTypeRegular  = "regular"
	SlotTypeCompact  = "compact"
	SlotTypeEV       = "ev"
	SlotTypeHandicap = "handicap"
	SlotTypeVIP      = "vip"
)

// CommercialParkingFacility is a multi-slot facility (mall, office, airport...).
type CommercialParkingFacility struct {
	ID      uuid.UUID `json:"id"`
	OwnerID int       `json:"owner_id"`

	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	FacilityType string  `json:"facility_type"`

	DefaultHourlyRate float64  `json:"default_hourly_rate"`
	FlatDayRate       *float64 `json:"flat_day_rate,omitempty"`

	HasCCTV         bool `json:"has_cctv"`
	HasEVCharging   bool `json:"has_ev_charging"`
	HasValetService bool `json:"has_valet_service"`
	HasCarWash      bool `json:"has_car_wash"`
	Is24Hours       bool `json:"is_24_hours"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	TotalSlots     int `json:"total_slots"`
	AvailableSlots int `json:"available_slots"`

	DistanceMeters *float64 `json:"distance_meters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommercialParkingSlot - one numbered slot on a floor of a facility.
type CommercialParkingSlot struct {
	ID         uuid.UUID `json:"id"`
	FacilityID uuid.UUID `json:"facility_id"`

	SlotNumber string `json:"slot_number"`
	Floor      int    `json:"floor"`
	SlotType   string `json:"slot_type"`

	IsOccupied bool `json:"is_occupied"`
	IsDisabled bool `json:"is_disabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
