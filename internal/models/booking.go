package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingDisputed  = "disputed"
)

// Spot reference kinds a booking can point at.
const (
	SpotRefParkingSpot    = "parking_spot"
	SpotRefCommercialSlot = "commercial_slot"
	SpotRefPrivateSlot    = "private_slot"
)

// BookingSession covers one stay: from reservation through entry verification
// to checkout. The access code gates the Start transition and lives only on
// this row.
type BookingSession struct {
	ID     uuid.UUID `json:"id"`
	UserID int       `json:"user_id"`

	SpotID   uuid.UUID `json:"spot_id"`
	SpotType string    `json:"spot_type"`

	BookingTime        time.Time  `json:"booking_time"`
	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ScheduledEndTime   time.Time  `json:"scheduled_end_time"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`

	DurationHours float64  `json:"duration"`
	TotalCost     float64  `json:"total_cost"`
	OverstayFee   *float64 `json:"overstay_fee,omitempty"`

	Status string `json:"status"`

	AccessCode string `json:"-"` // delivered to the driver by SMS only

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessAttempt is one audit row per code entry against a booking. The
// entered digits are never persisted.
type AccessAttempt struct {
	ID        int64     `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Outcome   string    `json:"outcome"` // success | failure | locked
	Remaining int       `json:"remaining"`
	CreatedAt time.Time `json:"created_at"`
}
