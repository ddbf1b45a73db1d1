package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/validation"
)

type BookingHandler struct {
	service  *services.BookingService
	activity *services.ActivityService
}

func NewBookingHandler(service *services.BookingService, activity *services.ActivityService) *BookingHandler {
	return &BookingHandler{service: service, activity: activity}
}

func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, services.ErrBookingNotYours), errors.Is(err, services.ErrNotHostOfBooking):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBadTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSpotUnavailable),
		errors.Is(err, services.ErrBadBookingWindow),
		errors.Is(err, services.ErrDurationTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("[booking] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking operation failed"})
	}
}

// @Summary      Book a spot
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        booking  body      validation.BookingRequest  true  "Booking request"
// @Success      201      {object}  models.BookingSession
// @Failure      422      {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req validation.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spotID, err := uuid.Parse(req.SpotID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}

	b := &models.BookingSession{
		UserID:             userID,
		SpotID:             spotID,
		SpotType:           req.SpotType,
		ScheduledStartTime: req.ScheduledStartTime,
		ScheduledEndTime:   req.ScheduledEndTime,
	}
	created, err := h.service.Create(b)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      Get booking
// @Tags         Bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.BookingSession
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.service.Get(id, userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Active bookings
// @Description  Confirmed and in-progress sessions of the caller
// @Tags         Bookings
// @Produce      json
// @Success      200  {array}  models.BookingSession
// @Router       /bookings/active [get]
func (h *BookingHandler) Active(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	bookings, err := h.service.Active(userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Booking history
// @Tags         Bookings
// @Produce      json
// @Success      200  {array}  models.BookingSession
// @Router       /bookings [get]
func (h *BookingHandler) History(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	bookings, err := h.service.History(userID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Confirm booking
// @Description  Host accepts a pending booking; the access code is generated and texted here
// @Tags         Bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.BookingSession
// @Router       /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.service.Confirm(id, userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      End session
// @Description  Checkout; overstay past the scheduled end is billed per started 15 minutes
// @Tags         Bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.BookingSession
// @Router       /bookings/{id}/end [post]
func (h *BookingHandler) End(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.service.End(id, userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Cancel booking
// @Tags         Bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.BookingSession
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.service.Cancel(id, userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Live session activity
// @Description  Elapsed time and running cost of an in-progress session
// @Tags         Bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  services.ActivitySnapshot
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id}/activity [get]
func (h *BookingHandler) Activity(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	if _, err := h.service.Get(id, userID); err != nil {
		bookingError(c, err)
		return
	}
	snap, ok := h.activity.Snapshot(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no running session for this booking"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
