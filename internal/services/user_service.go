package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

type UserService interface {
	CreateUserWithPassword(user *models.User, plainPassword string) error
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id int) error
	ListUsers(limit, offset int) ([]*models.User, error)
	GetUserCount() (int, error)

	SwitchRole(userID int) (*models.User, error)
	VerifyUser(userID int) error

	// refresh token storage
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(token string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *userService) CreateUserWithPassword(user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("password is required")
	}

	hashedPassword, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword
	if user.RoleID == 0 {
		user.RoleID = authz.RoleDriver
	}

	if err := s.repo.Create(user); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail registration
			log.Printf("CreateUserWithPassword: warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.repo.Update(user)
}

func (s *userService) DeleteUser(id int) error {
	return s.repo.Delete(id)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) GetUserCount() (int, error) {
	return s.repo.GetCount()
}

// SwitchRole toggles driver <-> host. Admins keep their role.
func (s *userService) SwitchRole(userID int) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user not found")
	}
	switch user.RoleID {
	case authz.RoleDriver:
		user.RoleID = authz.RoleHost
	case authz.RoleHost:
		user.RoleID = authz.RoleDriver
	default:
		return user, nil
	}
	if err := s.repo.UpdateRole(userID, user.RoleID); err != nil {
		return nil, err
	}
	user.IsHost = user.RoleID == authz.RoleHost
	log.Printf("[user][switch-role] user_id=%d role=%d", userID, user.RoleID)
	return user, nil
}

// VerifyUser - phone confirmed via SMS code.
func (s *userService) VerifyUser(userID int) error {
	return s.repo.MarkPhoneVerified(userID)
}

func (s *userService) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(userID, token, expiresAt)
}

func (s *userService) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return s.repo.RotateRefresh(oldToken, newToken, newExpiresAt)
}

func (s *userService) GetByRefreshToken(token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(token)
}
