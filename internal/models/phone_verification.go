package models

import "time"

// PhoneVerification - one row per code send during signup. Only the bcrypt
// hash of the code is stored, with TTL and a confirm-attempt counter.
type PhoneVerification struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	CodeHash  string    `json:"-"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Confirmed bool      `json:"confirmed"`
	Attempts  int       `json:"attempts"`
}
