package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

type SpotService struct {
	Repo *repositories.SpotRepository
}

func NewSpotService(repo *repositories.SpotRepository) *SpotService {
	return &SpotService{Repo: repo}
}

func (s *SpotService) Create(spot *models.ParkingSpot) error {
	if spot.Address == "" {
		return errors.New("address is required")
	}
	if spot.PricePerHour <= 0 {
		return errors.New("price_per_hour must be positive")
	}
	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = time.Now()
	}
	return s.Repo.Create(spot)
}

func (s *SpotService) GetByID(id uuid.UUID) (*models.ParkingSpot, error) {
	return s.Repo.GetByID(id)
}

func (s *SpotService) Update(spot *models.ParkingSpot) error {
	return s.Repo.Update(spot)
}

func (s *SpotService) Delete(id uuid.UUID) error {
	return s.Repo.Delete(id)
}

func (s *SpotService) List(f repositories.SpotFilter) ([]*models.ParkingSpot, error) {
	return s.Repo.List(f)
}

// ListByLocation annotates each spot with its distance from the caller and
// sorts nearest first.
func (s *SpotService) ListByLocation(f repositories.SpotFilter, lat, lon float64) ([]*models.ParkingSpot, error) {
	spots, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}
	for _, sp := range spots {
		d := haversineMeters(lat, lon, sp.Latitude, sp.Longitude)
		sp.DistanceMeters = &d
	}
	sort.Slice(spots, func(i, j int) bool {
		return *spots[i].DistanceMeters < *spots[j].DistanceMeters
	})
	return spots, nil
}

// Nearby - available spots within radiusMeters of the caller. The filter's
// amenity and price predicates still apply; availability is always on.
func (s *SpotService) Nearby(f repositories.SpotFilter, lat, lon, radiusMeters float64) ([]*models.ParkingSpot, error) {
	f.AvailableOnly = true
	f.Limit = 0
	spots, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}
	var nearby []*models.ParkingSpot
	for _, sp := range spots {
		d := haversineMeters(lat, lon, sp.Latitude, sp.Longitude)
		if d <= radiusMeters {
			sp.DistanceMeters = &d
			nearby = append(nearby, sp)
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return *nearby[i].DistanceMeters < *nearby[j].DistanceMeters
	})
	return nearby, nil
}

// ToggleOccupancy flips is_occupied and reports the new state.
func (s *SpotService) ToggleOccupancy(id uuid.UUID) (bool, error) {
	spot, err := s.Repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if spot == nil {
		return false, errors.New("spot not found")
	}
	if err := s.Repo.SetOccupied(id, !spot.IsOccupied); err != nil {
		return false, err
	}
	return !spot.IsOccupied, nil
}
