package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

type ListingHandler struct {
	service *services.ListingService
}

func NewListingHandler(service *services.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// @Summary      List private listings
// @Tags         Listings
// @Produce      json
// @Param        lat              query     number  false  "Latitude"
// @Param        lng              query     number  false  "Longitude"
// @Param        max_rate         query     number  false  "Max hourly rate"
// @Param        available        query     bool    false  "Only listings with a free slot"
// @Param        has_cctv         query     bool    false  "Only listings with CCTV"
// @Param        is_covered       query     bool    false  "Only covered listings"
// @Param        has_ev_charging  query     bool    false  "Only listings with EV charging"
// @Param        is_24_hours      query     bool    false  "Only 24-hour listings"
// @Success      200              {array}   models.PrivateParkingListing
// @Router       /listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	f := repositories.ListingFilter{
		AvailableOnly: c.Query("available") == "true",
		HasCCTV:       c.Query("has_cctv") == "true",
		IsCovered:     c.Query("is_covered") == "true",
		HasEVCharging: c.Query("has_ev_charging") == "true",
		Is24Hours:     c.Query("is_24_hours") == "true",
		Limit:         queryInt(c, "limit", 50),
		Offset:        queryInt(c, "offset", 0),
	}
	if r, ok := queryFloat(c, "max_rate"); ok {
		f.MaxHourlyRate = r
	}

	lat, haveLat := queryFloat(c, "lat")
	lng, haveLng := queryFloat(c, "lng")
	if haveLat && haveLng {
		listings, err := h.service.ListByLocation(f, lat, lng)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
			return
		}
		c.JSON(http.StatusOK, listings)
		return
	}

	listings, err := h.service.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// @Summary      My listings
// @Tags         Listings
// @Produce      json
// @Success      200  {array}  models.PrivateParkingListing
// @Router       /listings/mine [get]
func (h *ListingHandler) Mine(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	listings, err := h.service.List(repositories.ListingFilter{
		OwnerID: userID,
		Limit:   queryInt(c, "limit", 50),
		Offset:  queryInt(c, "offset", 0),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// @Summary      Get listing
// @Tags         Listings
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  models.PrivateParkingListing
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}
	l, err := h.service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}
	if l == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary      Create listing
// @Description  Hosts only; slot rows are created alongside
// @Tags         Listings
// @Accept       json
// @Produce      json
// @Param        listing  body      models.PrivateParkingListing  true  "Listing"
// @Success      201      {object}  models.PrivateParkingListing
// @Router       /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	if !authz.IsHost(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "host account required"})
		return
	}

	var l models.PrivateParkingListing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l.OwnerID = userID

	if err := h.service.Create(&l); err != nil {
		log.Printf("[listing][create] service error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary      Update listing
// @Tags         Listings
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Listing ID"
// @Param        listing  body      models.PrivateParkingListing  true  "Listing"
// @Success      200      {object}  models.PrivateParkingListing
// @Router       /listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	existing, err := h.service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if existing.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}

	var l models.PrivateParkingListing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l.ID = id
	l.OwnerID = existing.OwnerID

	if err := h.service.Update(&l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary      Delete listing
// @Tags         Listings
// @Param        id  path  string  true  "Listing ID"
// @Success      204
// @Router       /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}
	existing, err := h.service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if existing.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Pricing intelligence
// @Description  Suggested hourly rate from listings within 5 km
// @Tags         Listings
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  models.PricingIntelligence
// @Router       /listings/{id}/pricing-intelligence [get]
func (h *ListingHandler) PricingIntelligence(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	existing, err := h.service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if existing.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}

	pi, err := h.service.PricingIntelligence(id)
	if err != nil {
		log.Printf("[listing][pricing] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute pricing intelligence"})
		return
	}
	c.JSON(http.StatusOK, pi)
}
