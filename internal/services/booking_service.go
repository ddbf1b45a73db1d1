package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/pdf"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingNotYours  = errors.New("booking belongs to another user")
	ErrBadTransition    = errors.New("status transition not allowed")
	ErrSpotUnavailable  = errors.New("spot is not available")
	ErrBadBookingWindow = errors.New("scheduled end must be after scheduled start")
	ErrDurationTooLong  = errors.New("booking exceeds the listing's maximum duration")
	ErrNotHostOfBooking = errors.New("only the spot's host can confirm this booking")
)

// Overstay billing: every started 15-minute block past the scheduled end
// costs a flat fee.
const (
	overstayBlock = 15 * time.Minute
	overstayFee   = 20.0
)

// OverstayFee returns the fee owed for checking out after the scheduled end.
// Complete 15-minute blocks only; five minutes over costs nothing.
func OverstayFee(scheduledEnd, actualEnd time.Time) float64 {
	over := actualEnd.Sub(scheduledEnd)
	if over <= 0 {
		return 0
	}
	blocks := math.Floor(over.Minutes() / overstayBlock.Minutes())
	return blocks * overstayFee
}

// BookingStore is the slice of the booking repository the service needs.
type BookingStore interface {
	Create(b *models.BookingSession) error
	GetByID(id uuid.UUID) (*models.BookingSession, error)
	Update(b *models.BookingSession) error
	ListByUser(userID int, statuses []string, limit, offset int) ([]*models.BookingSession, error)
}

// spotTarget is a resolved booking target, whichever of the three spot kinds
// it points at.
type spotTarget struct {
	Label      string
	Address    string
	HostID     int
	HourlyRate float64
	AutoAccept bool
	Occupied   bool
	MaxHours   float64 // 0 means unlimited
}

type BookingService struct {
	Repo       BookingStore
	Users      repositories.UserRepository
	Spots      *repositories.SpotRepository
	Facilities *repositories.FacilityRepository
	Listings   *repositories.ListingRepository

	SMS      *SMSService
	Email    EmailService
	Telegram *TelegramService
	Receipts pdf.Generator
	Activity *ActivityService

	now func() time.Time
}

func NewBookingService(
	repo BookingStore,
	users repositories.UserRepository,
	spots *repositories.SpotRepository,
	facilities *repositories.FacilityRepository,
	listings *repositories.ListingRepository,
	sms *SMSService,
	email EmailService,
	telegram *TelegramService,
	receipts pdf.Generator,
	activity *ActivityService,
) *BookingService {
	return &BookingService{
		Repo:       repo,
		Users:      users,
		Spots:      spots,
		Facilities: facilities,
		Listings:   listings,
		SMS:        sms,
		Email:      email,
		Telegram:   telegram,
		Receipts:   receipts,
		Activity:   activity,
		now:        time.Now,
	}
}

// SetClock injects a deterministic clock for tests.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *BookingService) resolveTarget(spotType string, spotID uuid.UUID) (*spotTarget, error) {
	switch spotType {
	case models.SpotRefParkingSpot:
		spot, err := s.Spots.GetByID(spotID)
		if err != nil {
			return nil, err
		}
		if spot == nil {
			return nil, ErrSpotUnavailable
		}
		return &spotTarget{
			Label:      spot.Address,
			Address:    spot.Address,
			HostID:     spot.OwnerID,
			HourlyRate: spot.PricePerHour,
			AutoAccept: true,
			Occupied:   spot.IsOccupied,
		}, nil

	case models.SpotRefCommercialSlot:
		slot, err := s.Facilities.GetSlot(spotID)
		if err != nil {
			return nil, err
		}
		if slot == nil {
			return nil, ErrSpotUnavailable
		}
		fac, err := s.Facilities.GetByID(slot.FacilityID)
		if err != nil {
			return nil, err
		}
		if fac == nil {
			return nil, ErrSpotUnavailable
		}
		return &spotTarget{
			Label:      fmt.Sprintf("%s, slot %s", fac.Name, slot.SlotNumber),
			Address:    fac.Address,
			HostID:     fac.OwnerID,
			HourlyRate: fac.DefaultHourlyRate,
			AutoAccept: true,
			Occupied:   slot.IsOccupied,
		}, nil

	case models.SpotRefPrivateSlot:
		slot, err := s.Listings.GetSlot(spotID)
		if err != nil {
			return nil, err
		}
		if slot == nil {
			return nil, ErrSpotUnavailable
		}
		listing, err := s.Listings.GetByID(slot.ListingID)
		if err != nil {
			return nil, err
		}
		if listing == nil {
			return nil, ErrSpotUnavailable
		}
		return &spotTarget{
			Label:      fmt.Sprintf("%s, slot %d", listing.Title, slot.SlotNumber),
			Address:    listing.Address,
			HostID:     listing.OwnerID,
			HourlyRate: listing.HourlyRate,
			AutoAccept: listing.AutoAcceptBookings,
			Occupied:   slot.IsOccupied,
			MaxHours:   listing.MaxBookingHours(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown spot type %q", spotType)
	}
}

func (s *BookingService) setOccupied(spotType string, spotID uuid.UUID, occupied bool) error {
	switch spotType {
	case models.SpotRefParkingSpot:
		return s.Spots.SetOccupied(spotID, occupied)
	case models.SpotRefCommercialSlot:
		return s.Facilities.SetSlotOccupied(spotID, occupied)
	case models.SpotRefPrivateSlot:
		return s.Listings.SetSlotOccupied(spotID, occupied)
	default:
		return fmt.Errorf("unknown spot type %q", spotType)
	}
}

// Create reserves a spot. Private listings that require host approval start
// pending; everything else confirms immediately.
func (s *BookingService) Create(b *models.BookingSession) (*models.BookingSession, error) {
	if !b.ScheduledEndTime.After(b.ScheduledStartTime) {
		return nil, ErrBadBookingWindow
	}

	target, err := s.resolveTarget(b.SpotType, b.SpotID)
	if err != nil {
		return nil, err
	}
	if target.Occupied {
		return nil, ErrSpotUnavailable
	}

	hours := b.ScheduledEndTime.Sub(b.ScheduledStartTime).Hours()
	if target.MaxHours > 0 && hours > target.MaxHours {
		return nil, ErrDurationTooLong
	}

	b.ID = uuid.New()
	b.BookingTime = s.now()
	b.DurationHours = hours
	b.TotalCost = math.Round(target.HourlyRate*hours*100) / 100

	if target.AutoAccept {
		b.Status = models.BookingConfirmed
		b.AccessCode = generateDigitCode(6)
	} else {
		b.Status = models.BookingPending
	}

	if err := s.Repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if b.Status == models.BookingConfirmed {
		s.afterConfirm(b, target)
	} else {
		s.notifyHost(b, target, true)
	}

	return b, nil
}

// Confirm is the host accepting a pending booking on a listing that does not
// auto-accept.
func (s *BookingService) Confirm(bookingID uuid.UUID, hostID int) (*models.BookingSession, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	target, err := s.resolveTarget(b.SpotType, b.SpotID)
	if err != nil {
		return nil, err
	}
	if target.HostID != hostID {
		return nil, ErrNotHostOfBooking
	}
	if !canTransition(b.Status, models.BookingConfirmed, BookingTransitions) {
		return nil, ErrBadTransition
	}

	b.Status = models.BookingConfirmed
	b.AccessCode = generateDigitCode(6)
	if err := s.Repo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	s.afterConfirm(b, target)
	return b, nil
}

// afterConfirm runs the confirmation side effects: occupy the spot, text the
// access code to the driver, email the confirmation, ping the host. None of
// these failing rolls back the booking.
func (s *BookingService) afterConfirm(b *models.BookingSession, target *spotTarget) {
	if err := s.setOccupied(b.SpotType, b.SpotID, true); err != nil {
		log.Printf("[booking][confirm] failed to mark spot occupied: %v", err)
	}

	var driver *models.User
	if s.Users != nil {
		u, err := s.Users.GetByID(b.UserID)
		if err != nil {
			log.Printf("[booking][confirm] failed to load driver %d: %v", b.UserID, err)
		}
		driver = u
	}

	if driver != nil && s.SMS != nil {
		if err := s.SMS.SendAccessCode(driver.Phone, b.AccessCode); err != nil {
			log.Printf("[booking][confirm] failed to send access code SMS: %v", err)
		}
	}
	if driver != nil && s.Email != nil {
		err := s.Email.SendBookingConfirmation(
			driver.Email, driver.Name, target.Address,
			b.ScheduledStartTime, b.ScheduledEndTime, b.TotalCost, "")
		if err != nil {
			log.Printf("[booking][confirm] failed to send confirmation email: %v", err)
		}
	}

	s.notifyHost(b, target, false)
}

func (s *BookingService) notifyHost(b *models.BookingSession, target *spotTarget, pendingApproval bool) {
	if s.Telegram == nil || s.Users == nil {
		return
	}
	chatID, notify, err := s.Users.GetTelegramSettings(context.Background(), target.HostID)
	if err != nil {
		log.Printf("[booking][notify] failed to load host telegram settings: %v", err)
		return
	}
	if !notify || chatID == 0 {
		return
	}
	if err := s.Telegram.NotifyHostBooking(chatID, target.Label, b.ScheduledStartTime, b.ScheduledEndTime, b.TotalCost, pendingApproval); err != nil {
		log.Printf("[booking][notify] telegram notify failed: %v", err)
	}
}

// StartSession moves a confirmed booking to active. Only the access
// verification path calls this; a correct code is the sole way in.
func (s *BookingService) StartSession(bookingID uuid.UUID) (*models.BookingSession, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !canTransition(b.Status, models.BookingActive, BookingTransitions) {
		return nil, ErrBadTransition
	}

	now := s.now()
	b.Status = models.BookingActive
	b.ActualStartTime = &now
	if err := s.Repo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if s.Users != nil {
		if err := s.Users.IncrementTotalBookings(b.UserID); err != nil {
			log.Printf("[booking][start] failed to bump booking count for user %d: %v", b.UserID, err)
		}
	}
	if s.Activity != nil {
		target, err := s.resolveTarget(b.SpotType, b.SpotID)
		label := b.SpotType
		rate := 0.0
		if err == nil {
			label = target.Label
			rate = target.HourlyRate
		}
		if _, err := s.Activity.Start(b.ID, label, rate); err != nil {
			log.Printf("[booking][start] activity already running for %s: %v", b.ID, err)
		}
	}

	return b, nil
}

// End checks the driver out, bills any overstay, frees the spot and mails the
// receipt.
func (s *BookingService) End(bookingID uuid.UUID, userID int) (*models.BookingSession, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrBookingNotYours
	}
	if !canTransition(b.Status, models.BookingCompleted, BookingTransitions) {
		return nil, ErrBadTransition
	}

	now := s.now()
	b.Status = models.BookingCompleted
	b.ActualEndTime = &now
	if fee := OverstayFee(b.ScheduledEndTime, now); fee > 0 {
		b.OverstayFee = &fee
		b.TotalCost += fee
	}
	if err := s.Repo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	if err := s.setOccupied(b.SpotType, b.SpotID, false); err != nil {
		log.Printf("[booking][end] failed to free spot: %v", err)
	}
	if s.Activity != nil {
		s.Activity.End(b.ID)
	}

	s.sendReceipt(b)
	return b, nil
}

func (s *BookingService) sendReceipt(b *models.BookingSession) {
	if s.Users == nil || s.Email == nil {
		return
	}
	driver, err := s.Users.GetByID(b.UserID)
	if err != nil || driver == nil {
		log.Printf("[booking][receipt] failed to load driver %d: %v", b.UserID, err)
		return
	}

	var receiptPath string
	if s.Receipts != nil {
		target, terr := s.resolveTarget(b.SpotType, b.SpotID)
		label := b.SpotType
		if terr == nil {
			label = target.Label
		}
		fee := 0.0
		if b.OverstayFee != nil {
			fee = *b.OverstayFee
		}
		end := b.ScheduledEndTime
		if b.ActualEndTime != nil {
			end = *b.ActualEndTime
		}
		start := b.ScheduledStartTime
		if b.ActualStartTime != nil {
			start = *b.ActualStartTime
		}
		path, perr := s.Receipts.GenerateReceipt(pdf.ReceiptData{
			BookingID:   b.ID.String(),
			DriverName:  driver.Name,
			SpotLabel:   label,
			Start:       start,
			End:         end,
			DurationHrs: b.DurationHours,
			TotalCost:   b.TotalCost,
			OverstayFee: fee,
			Filename:    fmt.Sprintf("receipt_%s.pdf", b.ID),
		})
		if perr != nil {
			log.Printf("[booking][receipt] pdf generation failed: %v", perr)
		} else {
			receiptPath = path
		}
	}

	if err := s.Email.SendReceiptEmail(driver.Email, driver.Name, b.TotalCost, receiptPath); err != nil {
		log.Printf("[booking][receipt] failed to send receipt email: %v", err)
	}
}

// Cancel is available to the driver any time before checkout.
func (s *BookingService) Cancel(bookingID uuid.UUID, userID int) (*models.BookingSession, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrBookingNotYours
	}
	if !canTransition(b.Status, models.BookingCancelled, BookingTransitions) {
		return nil, ErrBadTransition
	}

	wasOccupying := b.Status == models.BookingConfirmed || b.Status == models.BookingActive

	b.Status = models.BookingCancelled
	if err := s.Repo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if wasOccupying {
		if err := s.setOccupied(b.SpotType, b.SpotID, false); err != nil {
			log.Printf("[booking][cancel] failed to free spot: %v", err)
		}
	}
	if s.Activity != nil {
		s.Activity.End(b.ID)
	}
	return b, nil
}

// MarkDisputed flips a booking to disputed. Called by the dispute service.
func (s *BookingService) MarkDisputed(bookingID uuid.UUID) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if !canTransition(b.Status, models.BookingDisputed, BookingTransitions) {
		return ErrBadTransition
	}
	b.Status = models.BookingDisputed
	return s.Repo.Update(b)
}

func (s *BookingService) Get(bookingID uuid.UUID, userID int) (*models.BookingSession, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrBookingNotYours
	}
	return b, nil
}

// Active returns the user's bookings that are live right now, either waiting
// for entry or in progress.
func (s *BookingService) Active(userID int) ([]*models.BookingSession, error) {
	return s.Repo.ListByUser(userID, []string{models.BookingConfirmed, models.BookingActive}, 50, 0)
}

func (s *BookingService) History(userID, limit, offset int) ([]*models.BookingSession, error) {
	return s.Repo.ListByUser(userID, nil, limit, offset)
}

// AccessCodeFor returns the code the entry flow must match. An empty code on
// a confirmed booking is a provisioning bug, not a driver mistake.
func (s *BookingService) AccessCodeFor(bookingID uuid.UUID) (string, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrBookingNotFound
	}
	return b.AccessCode, nil
}
