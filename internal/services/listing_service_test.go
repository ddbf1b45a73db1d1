package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestRateWithNeighbours(t *testing.T) {
	pi := SuggestRate(40, []float64{50, 60, 55})

	assert.Equal(t, 40.0, pi.CurrentRate)
	assert.Equal(t, 3, pi.NearbyListingsCount)
	assert.Equal(t, 50.0, pi.MinNearbyRate)
	assert.Equal(t, 60.0, pi.MaxNearbyRate)
	assert.InDelta(t, 55.0, pi.AvgNearbyRate, 0.001)
	// avg 55 rounds to the nearest 5
	assert.Equal(t, 55.0, pi.SuggestedHourlyRate)
}

func TestSuggestRateRoundsToNearestFive(t *testing.T) {
	pi := SuggestRate(40, []float64{47, 48})
	// avg 47.5 rounds up to 50
	assert.Equal(t, 50.0, pi.SuggestedHourlyRate)

	pi = SuggestRate(40, []float64{41, 42})
	// avg 41.5 rounds down to 40
	assert.Equal(t, 40.0, pi.SuggestedHourlyRate)
}

func TestSuggestRateWithoutNeighboursKeepsCurrent(t *testing.T) {
	pi := SuggestRate(35, nil)
	assert.Equal(t, 35.0, pi.SuggestedHourlyRate)
	assert.Equal(t, 0, pi.NearbyListingsCount)
	assert.Equal(t, 0.0, pi.AvgNearbyRate)
}

func TestHaversineMeters(t *testing.T) {
	// Bangalore MG Road to Cubbon Park, roughly 1.3 km
	d := haversineMeters(12.9757, 77.6050, 12.9763, 77.5929)
	assert.InDelta(t, 1300, d, 200)

	// same point is zero
	assert.InDelta(t, 0, haversineMeters(12.9757, 77.6050, 12.9757, 77.6050), 0.01)
}
