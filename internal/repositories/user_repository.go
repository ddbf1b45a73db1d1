package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
	GetByRefreshToken(token string) (*models.User, error)

	// role & verification
	UpdateRole(userID, roleID int) error
	MarkPhoneVerified(userID int) error
	IncrementTotalBookings(userID int) error

	// Telegram helpers
	UpdateTelegramLink(userID int, chatID int64, enable bool) error
	GetTelegramSettings(ctx context.Context, userID int) (chatID int64, notify bool, err error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, name, phone, profile_image_url, password_hash, role_id,
	host_rating, total_bookings, phone_verified, created_at,
	refresh_token, refresh_expires_at, refresh_revoked, telegram_chat_id, telegram_notify`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.ProfileImageURL, &u.PasswordHash, &u.RoleID,
		&u.HostRating, &u.TotalBookings, &u.PhoneVerified, &u.CreatedAt,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked, &u.TelegramChatID, &u.TelegramNotify,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.IsHost = u.RoleID >= 20
	return &u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, name, phone, profile_image_url, password_hash, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := r.DB.QueryRow(q,
		user.Email, user.Name, user.Phone, user.ProfileImageURL, user.PasswordHash, user.RoleID, user.CreatedAt,
	).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET name = $1, phone = $2, profile_image_url = $3, role_id = $4
		WHERE id = $5
	`
	if _, err := r.DB.Exec(q, user.Name, user.Phone, user.ProfileImageURL, user.RoleID, user.ID); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	rows, err := r.DB.Query(`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.Phone, &u.ProfileImageURL, &u.PasswordHash, &u.RoleID,
			&u.HostRating, &u.TotalBookings, &u.PhoneVerified, &u.CreatedAt,
			&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked, &u.TelegramChatID, &u.TelegramNotify,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.IsHost = u.RoleID >= 20
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token = $1, refresh_expires_at = $2, refresh_revoked = FALSE
		WHERE id = $3
	`
	if _, err := r.DB.Exec(q, token, expiresAt, userID); err != nil {
		return fmt.Errorf("update refresh: %w", err)
	}
	return nil
}

func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token = $1, refresh_expires_at = $2
		WHERE refresh_token = $3 AND refresh_revoked = FALSE
		RETURNING ` + userColumns
	row := r.DB.QueryRow(q, newToken, newExpiresAt, oldToken)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("rotate refresh: %w", err)
	}
	return u, nil
}

func (r *userRepository) ClearRefresh(userID int) error {
	const q = `UPDATE users SET refresh_token = NULL, refresh_expires_at = NULL, refresh_revoked = TRUE WHERE id = $1`
	if _, err := r.DB.Exec(q, userID); err != nil {
		return fmt.Errorf("clear refresh: %w", err)
	}
	return nil
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by refresh token: %w", err)
	}
	return u, nil
}

func (r *userRepository) UpdateRole(userID, roleID int) error {
	if _, err := r.DB.Exec(`UPDATE users SET role_id = $1 WHERE id = $2`, roleID, userID); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (r *userRepository) MarkPhoneVerified(userID int) error {
	if _, err := r.DB.Exec(`UPDATE users SET phone_verified = TRUE WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("mark phone verified: %w", err)
	}
	return nil
}

func (r *userRepository) IncrementTotalBookings(userID int) error {
	if _, err := r.DB.Exec(`UPDATE users SET total_bookings = total_bookings + 1 WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("increment total bookings: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateTelegramLink(userID int, chatID int64, enable bool) error {
	const q = `UPDATE users SET telegram_chat_id = $1, telegram_notify = $2 WHERE id = $3`
	if _, err := r.DB.Exec(q, chatID, enable, userID); err != nil {
		return fmt.Errorf("update telegram link: %w", err)
	}
	return nil
}

func (r *userRepository) GetTelegramSettings(ctx context.Context, userID int) (int64, bool, error) {
	const q = `SELECT COALESCE(telegram_chat_id, 0), telegram_notify FROM users WHERE id = $1`
	var chatID int64
	var notify bool
	if err := r.DB.QueryRowContext(ctx, q, userID).Scan(&chatID, &notify); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get telegram settings: %w", err)
	}
	return chatID, notify, nil
}
