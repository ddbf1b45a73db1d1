package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

var ErrDisputeNotFound = errors.New("dispute not found")

type DisputeService struct {
	Repo     *repositories.DisputeRepository
	Bookings *BookingService
}

func NewDisputeService(repo *repositories.DisputeRepository, bookings *BookingService) *DisputeService {
	return &DisputeService{Repo: repo, Bookings: bookings}
}

// Create files a dispute against one of the user's bookings and flips the
// booking to disputed.
func (s *DisputeService) Create(d *models.DisputeReport, userID int) (*models.DisputeReport, error) {
	if d.Reason == "" {
		return nil, errors.New("dispute reason is required")
	}
	if _, err := s.Bookings.Get(d.BookingID, userID); err != nil {
		return nil, err
	}
	if err := s.Bookings.MarkDisputed(d.BookingID); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DisputeService) Get(id uuid.UUID) (*models.DisputeReport, error) {
	d, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDisputeNotFound
	}
	return d, nil
}

func (s *DisputeService) ListByUser(userID, limit, offset int) ([]*models.DisputeReport, error) {
	return s.Repo.ListByUser(userID, limit, offset)
}

// UpdateStatus moves a dispute along the review pipeline. Admin only; the
// handler enforces the role.
func (s *DisputeService) UpdateStatus(id uuid.UUID, status string) (*models.DisputeReport, error) {
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(d.Status, status, DisputeTransitions) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, d.Status, status)
	}
	if err := s.Repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	d.Status = status
	return d, nil
}

// Resolve closes a dispute with a written resolution.
func (s *DisputeService) Resolve(id uuid.UUID, resolution string) (*models.DisputeReport, error) {
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(d.Status, models.DisputeResolved, DisputeTransitions) {
		return nil, fmt.Errorf("%w: %s -> resolved", ErrBadTransition, d.Status)
	}
	if err := s.Repo.Resolve(id, resolution); err != nil {
		return nil, err
	}
	return s.Get(id)
}
