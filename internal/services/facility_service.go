package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

type FacilityService struct {
	Repo *repositories.FacilityRepository
}

func NewFacilityService(repo *repositories.FacilityRepository) *FacilityService {
	return &FacilityService{Repo: repo}
}

func (s *FacilityService) Create(f *models.CommercialParkingFacility) error {
	if f.Name == "" || f.Address == "" {
		return errors.New("name and address are required")
	}
	if f.DefaultHourlyRate <= 0 {
		return errors.New("default_hourly_rate must be positive")
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return s.Repo.Create(f)
}

func (s *FacilityService) GetByID(id uuid.UUID) (*models.CommercialParkingFacility, error) {
	f, err := s.Repo.GetByID(id)
	if err != nil || f == nil {
		return f, err
	}
	total, available, err := s.Repo.SlotCounts(id)
	if err != nil {
		return nil, err
	}
	f.TotalSlots = total
	f.AvailableSlots = available
	return f, nil
}

func (s *FacilityService) List(facilityType string, ownerID, limit, offset int) ([]*models.CommercialParkingFacility, error) {
	return s.Repo.List(facilityType, ownerID, limit, offset)
}

// ListByLocation sorts facilities nearest first.
func (s *FacilityService) ListByLocation(facilityType string, lat, lon float64) ([]*models.CommercialParkingFacility, error) {
	facilities, err := s.Repo.List(facilityType, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	for _, f := range facilities {
		d := haversineMeters(lat, lon, f.Latitude, f.Longitude)
		f.DistanceMeters = &d
	}
	sort.Slice(facilities, func(i, j int) bool {
		return *facilities[i].DistanceMeters < *facilities[j].DistanceMeters
	})
	return facilities, nil
}

func (s *FacilityService) Delete(id uuid.UUID) error {
	return s.Repo.Delete(id)
}

func (s *FacilityService) ListSlots(facilityID uuid.UUID, f repositories.SlotFilter) ([]*models.CommercialParkingSlot, error) {
	return s.Repo.ListSlots(facilityID, f)
}

// CreateSlots bulk-creates numbered slots on a floor, continuing the
// existing numbering ("F<floor>-<n>").
func (s *FacilityService) CreateSlots(facilityID uuid.UUID, count, floor int, slotType string) error {
	if count <= 0 {
		return errors.New("count must be positive")
	}
	if floor <= 0 {
		floor = 1
	}
	if slotType == "" {
		slotType = models.SlotTypeRegular
	}
	facility, err := s.Repo.GetByID(facilityID)
	if err != nil {
		return err
	}
	if facility == nil {
		return errors.New("facility not found")
	}

	existing, err := s.Repo.CountSlotsOnFloor(facilityID, floor)
	if err != nil {
		return err
	}

	slots := make([]*models.CommercialParkingSlot, 0, count)
	for i := 0; i < count; i++ {
		slots = append(slots, &models.CommercialParkingSlot{
			FacilityID: facilityID,
			Floor:      floor,
			SlotType:   slotType,
			SlotNumber: fmt.Sprintf("F%d-%d", floor, existing+i+1),
		})
	}
	return s.Repo.CreateSlots(slots)
}
