package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

func TestDisputeTransitionTable(t *testing.T) {
	assert.True(t, canTransition(models.DisputePending, models.DisputeUnderReview, DisputeTransitions))
	assert.True(t, canTransition(models.DisputePending, models.DisputeResolved, DisputeTransitions))
	assert.True(t, canTransition(models.DisputeUnderReview, models.DisputeRejected, DisputeTransitions))

	assert.False(t, canTransition(models.DisputeResolved, models.DisputePending, DisputeTransitions))
	assert.False(t, canTransition(models.DisputeRejected, models.DisputeUnderReview, DisputeTransitions))
}
