package services

import "github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"

// Allowed booking status transitions.
// NB: "active" is only reachable through access-code verification (StartSession),
// never by a bare status update.
var BookingTransitions = map[string]map[string]bool{
	models.BookingPending:   {models.BookingConfirmed: true, models.BookingCancelled: true},
	models.BookingConfirmed: {models.BookingActive: true, models.BookingCancelled: true},
	models.BookingActive:    {models.BookingCompleted: true, models.BookingCancelled: true, models.BookingDisputed: true},
	models.BookingCompleted: {models.BookingDisputed: true},
	models.BookingCancelled: {},
	models.BookingDisputed:  {},
}

var DisputeTransitions = map[string]map[string]bool{
	models.DisputePending:     {models.DisputeUnderReview: true, models.DisputeResolved: true, models.DisputeRejected: true},
	models.DisputeUnderReview: {models.DisputeResolved: true, models.DisputeRejected: true},
	models.DisputeResolved:    {},
	models.DisputeRejected:    {},
}

func canTransition(current, to string, table map[string]map[string]bool) bool {
	if current == "" {
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}
