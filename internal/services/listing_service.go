package services

import (
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

// Radius used when comparing a listing against its neighbourhood.
const pricingRadiusMeters = 5000

type ListingService struct {
	Repo *repositories.ListingRepository
}

func NewListingService(repo *repositories.ListingRepository) *ListingService {
	return &ListingService{Repo: repo}
}

func (s *ListingService) Create(l *models.PrivateParkingListing) error {
	if l.Title == "" || l.Address == "" {
		return errors.New("title and address are required")
	}
	if l.HourlyRate <= 0 {
		return errors.New("hourly_rate must be positive")
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	if err := s.Repo.Create(l); err != nil {
		return err
	}
	// one slot row per advertised slot
	for i := 1; i <= l.TotalSlots; i++ {
		if err := s.Repo.CreateSlot(&models.PrivateParkingSlot{ListingID: l.ID, SlotNumber: i}); err != nil {
			return err
		}
	}
	return nil
}

func (s *ListingService) GetByID(id uuid.UUID) (*models.PrivateParkingListing, error) {
	l, err := s.Repo.GetByID(id)
	if err != nil || l == nil {
		return l, err
	}
	occupied, err := s.Repo.OccupiedSlotCount(id)
	if err != nil {
		return nil, err
	}
	l.AvailableSlots = l.TotalSlots - occupied
	return l, nil
}

func (s *ListingService) Update(l *models.PrivateParkingListing) error {
	return s.Repo.Update(l)
}

func (s *ListingService) Delete(id uuid.UUID) error {
	return s.Repo.Delete(id)
}

func (s *ListingService) List(f repositories.ListingFilter) ([]*models.PrivateParkingListing, error) {
	return s.Repo.List(f)
}

// ListByLocation sorts listings nearest first. Filter predicates still
// apply; paging is dropped so the sort sees the whole set.
func (s *ListingService) ListByLocation(f repositories.ListingFilter, lat, lon float64) ([]*models.PrivateParkingListing, error) {
	f.Limit = 0
	listings, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		d := haversineMeters(lat, lon, l.Latitude, l.Longitude)
		l.DistanceMeters = &d
	}
	sort.Slice(listings, func(i, j int) bool {
		return *listings[i].DistanceMeters < *listings[j].DistanceMeters
	})
	return listings, nil
}

// PricingIntelligence compares the listing's hourly rate against other
// listings within 5 km and suggests a rate. The suggestion is persisted on
// the listing. Pure arithmetic over the neighbours' rates; with no
// neighbours the current rate is its own suggestion.
func (s *ListingService) PricingIntelligence(id uuid.UUID) (*models.PricingIntelligence, error) {
	listing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.New("listing not found")
	}

	all, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}

	var rates []float64
	for _, other := range all {
		if other.ID == listing.ID {
			continue
		}
		d := haversineMeters(listing.Latitude, listing.Longitude, other.Latitude, other.Longitude)
		if d <= pricingRadiusMeters {
			rates = append(rates, other.HourlyRate)
		}
	}

	result := SuggestRate(listing.HourlyRate, rates)

	if err := s.Repo.UpdateSuggestedRate(id, result.SuggestedHourlyRate); err != nil {
		log.Printf("[listing][pricing] persist suggestion failed: listing=%s err=%v", id, err)
	}
	return result, nil
}

// SuggestRate reduces the neighbour rates to count/avg/min/max and rounds
// the average to the nearest ₹5 as the suggestion.
func SuggestRate(currentRate float64, nearbyRates []float64) *models.PricingIntelligence {
	out := &models.PricingIntelligence{
		CurrentRate:         currentRate,
		SuggestedHourlyRate: currentRate,
		NearbyListingsCount: len(nearbyRates),
	}
	if len(nearbyRates) == 0 {
		return out
	}

	min, max, sum := nearbyRates[0], nearbyRates[0], 0.0
	for _, r := range nearbyRates {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
		sum += r
	}
	avg := sum / float64(len(nearbyRates))

	out.AvgNearbyRate = avg
	out.MinNearbyRate = min
	out.MaxNearbyRate = max
	out.SuggestedHourlyRate = math.Round(avg/5) * 5
	return out
}
