package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

// HostReport is the host dashboard summary across everything the host owns.
type HostReport struct {
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	SpotCount         int     `json:"spot_count"`

	Recent []*models.BookingSession `json:"recent_bookings"`
}

type ReportService struct {
	Bookings   *repositories.BookingRepository
	Spots      *repositories.SpotRepository
	Facilities *repositories.FacilityRepository
	Listings   *repositories.ListingRepository
}

func NewReportService(
	bookings *repositories.BookingRepository,
	spots *repositories.SpotRepository,
	facilities *repositories.FacilityRepository,
	listings *repositories.ListingRepository,
) *ReportService {
	return &ReportService{
		Bookings:   bookings,
		Spots:      spots,
		Facilities: facilities,
		Listings:   listings,
	}
}

// hostSpotIDs collects every bookable unit the host owns across the three
// spot kinds.
func (s *ReportService) hostSpotIDs(hostID int) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	spots, err := s.Spots.List(repositories.SpotFilter{OwnerID: hostID})
	if err != nil {
		return nil, fmt.Errorf("list host spots: %w", err)
	}
	for _, sp := range spots {
		ids = append(ids, sp.ID)
	}

	facilities, err := s.Facilities.List("", hostID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list host facilities: %w", err)
	}
	for _, f := range facilities {
		slots, err := s.Facilities.ListSlots(f.ID, repositories.SlotFilter{})
		if err != nil {
			return nil, fmt.Errorf("list facility slots: %w", err)
		}
		for _, sl := range slots {
			ids = append(ids, sl.ID)
		}
	}

	listings, err := s.Listings.List(repositories.ListingFilter{OwnerID: hostID})
	if err != nil {
		return nil, fmt.Errorf("list host listings: %w", err)
	}
	for _, l := range listings {
		slotIDs, err := s.listingSlotIDs(l.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, slotIDs...)
	}

	return ids, nil
}

func (s *ReportService) listingSlotIDs(listingID uuid.UUID) ([]uuid.UUID, error) {
	slots, err := s.Listings.ListSlots(listingID)
	if err != nil {
		return nil, fmt.Errorf("list listing slots: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(slots))
	for _, sl := range slots {
		ids = append(ids, sl.ID)
	}
	return ids, nil
}

// HostSummary aggregates bookings and revenue over everything the host owns.
func (s *ReportService) HostSummary(hostID int) (*HostReport, error) {
	ids, err := s.hostSpotIDs(hostID)
	if err != nil {
		return nil, err
	}

	report := &HostReport{SpotCount: len(ids)}
	if len(ids) == 0 {
		return report, nil
	}

	total, completed, revenue, err := s.Bookings.HostSummary(ids)
	if err != nil {
		return nil, err
	}
	report.TotalBookings = total
	report.CompletedBookings = completed
	report.TotalRevenue = revenue

	recent, err := s.Bookings.ListBySpots(ids, 10, 0)
	if err != nil {
		return nil, err
	}
	report.Recent = recent
	return report, nil
}
