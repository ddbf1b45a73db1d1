package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DisputePending     = "pending"
	DisputeUnderReview = "under_review"
	DisputeResolved    = "resolved"
	DisputeRejected    = "rejected"
)

// DisputeReport - driver- or host-raised issue against a booking.
type DisputeReport struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`

	Reason      string   `json:"reason"`
	Description string   `json:"description"`
	PhotoURLs   []string `json:"photo_urls"`

	Status     string     `json:"status"`
	Resolution *string    `json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
