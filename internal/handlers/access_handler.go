package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/access"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

// AccessHandler exposes the access-code entry flow: open the keypad, feed
// digits, read the state, dismiss. The sixth digit submits automatically;
// there is no explicit submit endpoint.
type AccessHandler struct {
	service *services.AccessService
}

func NewAccessHandler(service *services.AccessService) *AccessHandler {
	return &AccessHandler{service: service}
}

func accessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessLocked):
		c.JSON(http.StatusLocked, gin.H{"error": "Too many wrong codes. Contact the owner."})
	case errors.Is(err, services.ErrBookingNotEligible):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoOpenEntry):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, services.ErrBookingNotYours):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrNoAccessCode), errors.Is(err, access.ErrBadAccessCode):
		log.Printf("[access] booking has no usable access code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "access code unavailable, contact support"})
	default:
		log.Printf("[access] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "access operation failed"})
	}
}

// @Summary      Open code entry
// @Description  Presents the keypad for a confirmed booking
// @Tags         Access
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  services.EntryStatus
// @Failure      423  {object}  map[string]string
// @Router       /bookings/{id}/access [post]
func (h *AccessHandler) Open(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	status, err := h.service.Open(id, userID)
	if err != nil {
		accessError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

type keypadRequest struct {
	Digit string `json:"digit" binding:"required,len=1"`
}

// @Summary      Press a keypad digit
// @Description  The sixth digit verifies the code before the response returns
// @Tags         Access
// @Accept       json
// @Produce      json
// @Param        id     path      string        true  "Booking ID"
// @Param        digit  body      keypadRequest  true  "Single digit 0-9"
// @Success      200    {object}  services.EntryStatus
// @Router       /bookings/{id}/access/digits [post]
func (h *AccessHandler) Press(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	var req keypadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := h.service.Press(id, userID, req.Digit[0])
	if err != nil {
		accessError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Delete the last entered digit
// @Tags         Access
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  services.EntryStatus
// @Router       /bookings/{id}/access/digits [delete]
func (h *AccessHandler) DeleteDigit(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	status, err := h.service.DeleteLast(id, userID)
	if err != nil {
		accessError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Entry state
// @Tags         Access
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  services.EntryStatus
// @Router       /bookings/{id}/access [get]
func (h *AccessHandler) Status(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	status, err := h.service.Status(id, userID)
	if err != nil {
		accessError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Dismiss code entry
// @Description  Abandons the keypad; an in-flight verification is cancelled without consuming an attempt
// @Tags         Access
// @Param        id  path  string  true  "Booking ID"
// @Success      204
// @Router       /bookings/{id}/access [delete]
func (h *AccessHandler) Dismiss(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	if err := h.service.Dismiss(id, userID); err != nil {
		accessError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Attempt audit trail
// @Tags         Access
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {array}   models.AccessAttempt
// @Router       /bookings/{id}/access/attempts [get]
func (h *AccessHandler) Attempts(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	attempts, err := h.service.AuditTrail(id, userID)
	if err != nil {
		accessError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}
