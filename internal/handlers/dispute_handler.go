package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

type DisputeHandler struct {
	service *services.DisputeService
}

func NewDisputeHandler(service *services.DisputeService) *DisputeHandler {
	return &DisputeHandler{service: service}
}

type createDisputeRequest struct {
	BookingID   string   `json:"booking_id" binding:"required"`
	Reason      string   `json:"reason" binding:"required"`
	Description string   `json:"description"`
	PhotoURLs   []string `json:"photo_urls"`
}

// @Summary      File a dispute
// @Tags         Disputes
// @Accept       json
// @Produce      json
// @Param        dispute  body      createDisputeRequest  true  "Dispute"
// @Success      201      {object}  models.DisputeReport
// @Router       /disputes [post]
func (h *DisputeHandler) Create(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req createDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	d := &models.DisputeReport{
		BookingID:   bookingID,
		Reason:      req.Reason,
		Description: req.Description,
		PhotoURLs:   req.PhotoURLs,
	}
	created, err := h.service.Create(d, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, services.ErrBookingNotYours):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrBadTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "booking cannot be disputed in its current state"})
		default:
			log.Printf("[dispute][create] service error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      My disputes
// @Tags         Disputes
// @Produce      json
// @Success      200  {array}  models.DisputeReport
// @Router       /disputes [get]
func (h *DisputeHandler) List(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	disputes, err := h.service.ListByUser(userID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list disputes"})
		return
	}
	c.JSON(http.StatusOK, disputes)
}

type updateDisputeRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

// @Summary      Update dispute status
// @Description  Admin only. Setting status to resolved requires a resolution text
// @Tags         Disputes
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Dispute ID"
// @Param        dispute  body      updateDisputeRequest  true  "New status"
// @Success      200      {object}  models.DisputeReport
// @Router       /disputes/{id} [put]
func (h *DisputeHandler) Update(c *gin.Context) {
	_, roleID := getUserAndRole(c)
	if !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispute id"})
		return
	}

	var req updateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		d   *models.DisputeReport
		err error
	)
	if req.Status == models.DisputeResolved {
		if req.Resolution == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resolution text is required"})
			return
		}
		d, err = h.service.Resolve(id, req.Resolution)
	} else {
		d, err = h.service.UpdateStatus(id, req.Status)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDisputeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dispute not found"})
		case errors.Is(err, services.ErrBadTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("[dispute][update] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dispute"})
		}
		return
	}
	c.JSON(http.StatusOK, d)
}
