package models

import "time"

type User struct {
	ID              int     `json:"id"`
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone_number"`
	ProfileImageURL string  `json:"profile_image_url"`
	PasswordHash    string  `json:"-"` // never serialized
	RoleID          int     `json:"role_id"`
	IsHost          bool    `json:"is_host"`
	HostRating      float64 `json:"host_rating"`
	TotalBookings   int     `json:"total_bookings"`
	PhoneVerified   bool    `json:"phone_verified"`

	CreatedAt time.Time `json:"date_joined"`

	// opaque refresh token storage
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`

	// Telegram host notifications
	TelegramChatID *int64 `json:"-"`
	TelegramNotify bool   `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
