package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotListQueryAmenityFilters(t *testing.T) {
	q, args := buildSpotListQuery(SpotFilter{
		SpotType:      "driveway",
		MaxPrice:      60,
		HasCCTV:       true,
		IsCovered:     true,
		HasEVCharging: true,
		Is24Hours:     true,
	})

	assert.Contains(t, q, "spot_type = $1")
	assert.Contains(t, q, "price_per_hour <= $2")
	assert.Contains(t, q, "has_cctv = TRUE")
	assert.Contains(t, q, "is_covered = TRUE")
	assert.Contains(t, q, "has_ev_charging = TRUE")
	assert.Contains(t, q, "is_24_hours = TRUE")
	assert.Equal(t, []interface{}{"driveway", 60.0}, args)
}

func TestSpotListQueryUnsetFiltersAddNothing(t *testing.T) {
	q, args := buildSpotListQuery(SpotFilter{})

	assert.NotContains(t, q, "has_cctv")
	assert.NotContains(t, q, "is_covered")
	assert.NotContains(t, q, "has_ev_charging")
	assert.NotContains(t, q, "is_24_hours")
	assert.NotContains(t, q, "is_occupied")
	assert.Empty(t, args)
}

func TestSpotListQueryAvailability(t *testing.T) {
	q, _ := buildSpotListQuery(SpotFilter{AvailableOnly: true})
	assert.Contains(t, q, "is_occupied = FALSE")
	assert.Contains(t, q, "is_disabled = FALSE")
}

func TestListingListQueryFilters(t *testing.T) {
	q, args := buildListingListQuery(ListingFilter{
		MaxHourlyRate: 45,
		AvailableOnly: true,
		HasCCTV:       true,
		Is24Hours:     true,
	})

	assert.Contains(t, q, "hourly_rate <= $1")
	assert.Contains(t, q, "EXISTS")
	assert.Contains(t, q, "s.is_occupied = FALSE")
	assert.Contains(t, q, "has_cctv = TRUE")
	assert.Contains(t, q, "is_24_hours = TRUE")
	assert.NotContains(t, q, "is_covered")
	assert.Equal(t, []interface{}{45.0}, args)
}

func TestListingListQueryOwnerAndPaging(t *testing.T) {
	q, args := buildListingListQuery(ListingFilter{OwnerID: 7, Limit: 10, Offset: 20})

	assert.Contains(t, q, "owner_id = $1")
	assert.Contains(t, q, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []interface{}{7, 10, 20}, args)
}
