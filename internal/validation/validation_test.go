package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validBookingRequest() BookingRequest {
	return BookingRequest{
		SpotID:             uuid.New().String(),
		SpotType:           "private_slot",
		ScheduledStartTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ScheduledEndTime:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBookingRequestValid(t *testing.T) {
	assert.NoError(t, Struct(validBookingRequest()))
}

func TestBookingRequestEndBeforeStart(t *testing.T) {
	req := validBookingRequest()
	req.ScheduledEndTime = req.ScheduledStartTime.Add(-time.Hour)
	err := Struct(req)
	assert.ErrorContains(t, err, "scheduled end must be after scheduled start")
}

func TestBookingRequestEndEqualsStart(t *testing.T) {
	req := validBookingRequest()
	req.ScheduledEndTime = req.ScheduledStartTime
	assert.Error(t, Struct(req))
}

func TestBookingRequestBadSpotType(t *testing.T) {
	req := validBookingRequest()
	req.SpotType = "garage"
	err := Struct(req)
	assert.ErrorContains(t, err, "SpotType must be one of")
}

func TestBookingRequestMissingFields(t *testing.T) {
	err := Struct(BookingRequest{})
	assert.ErrorContains(t, err, "is required")
}

func TestBookingRequestBadUUID(t *testing.T) {
	req := validBookingRequest()
	req.SpotID = "not-a-uuid"
	err := Struct(req)
	assert.ErrorContains(t, err, "must be a valid UUID")
}
