package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLifecycle(t *testing.T) {
	svc := NewActivityService()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	id := uuid.New()
	_, err := svc.Start(id, "MG Road, slot F1-3", 60)
	require.NoError(t, err)

	// one session per booking
	_, err = svc.Start(id, "MG Road, slot F1-3", 60)
	assert.ErrorIs(t, err, ErrActivityExists)

	now = now.Add(90 * time.Minute)
	snap, ok := svc.Snapshot(id)
	require.True(t, ok)
	assert.Equal(t, int64(90*60), snap.ElapsedSecs)
	assert.InDelta(t, 90.0, snap.RunningCost, 0.001)
	assert.Equal(t, "1h30m0s", snap.Elapsed)

	final, ok := svc.End(id)
	require.True(t, ok)
	assert.Equal(t, int64(90*60), final.ElapsedSecs)

	// ended activity is gone
	_, ok = svc.Snapshot(id)
	assert.False(t, ok)
	_, ok = svc.End(id)
	assert.False(t, ok)
}

func TestActivityUnknownBooking(t *testing.T) {
	svc := NewActivityService()
	_, ok := svc.Snapshot(uuid.New())
	assert.False(t, ok)
}
