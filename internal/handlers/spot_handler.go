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

type SpotHandler struct {
	service *services.SpotService
}

func NewSpotHandler(service *services.SpotService) *SpotHandler {
	return &SpotHandler{service: service}
}

// @Summary      List spots
// @Description  Optional lat/lng sorts by distance; radius narrows to nearby only
// @Tags         Spots
// @Produce      json
// @Param        spot_type        query     string   false  "Spot type filter"
// @Param        max_price        query     number   false  "Max hourly price"
// @Param        available        query     bool     false  "Only unoccupied spots"
// @Param        has_cctv         query     bool     false  "Only spots with CCTV"
// @Param        is_covered       query     bool     false  "Only covered spots"
// @Param        has_ev_charging  query     bool     false  "Only spots with EV charging"
// @Param        is_24_hours      query     bool     false  "Only 24-hour spots"
// @Param        lat              query     number   false  "Latitude"
// @Param        lng              query     number   false  "Longitude"
// @Param        radius           query     number   false  "Radius in meters"
// @Success      200              {array}   models.ParkingSpot
// @Router       /spots [get]
func (h *SpotHandler) List(c *gin.Context) {
	f := repositories.SpotFilter{
		SpotType:      c.Query("spot_type"),
		AvailableOnly: c.Query("available") == "true",
		HasCCTV:       c.Query("has_cctv") == "true",
		IsCovered:     c.Query("is_covered") == "true",
		HasEVCharging: c.Query("has_ev_charging") == "true",
		Is24Hours:     c.Query("is_24_hours") == "true",
		Limit:         queryInt(c, "limit", 50),
		Offset:        queryInt(c, "offset", 0),
	}
	if p, ok := queryFloat(c, "max_price"); ok {
		f.MaxPrice = p
	}

	lat, haveLat := queryFloat(c, "lat")
	lng, haveLng := queryFloat(c, "lng")

	if haveLat && haveLng {
		if radius, ok := queryFloat(c, "radius"); ok {
			spots, err := h.service.Nearby(f, lat, lng, radius)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list spots"})
				return
			}
			c.JSON(http.StatusOK, spots)
			return
		}
		spots, err := h.service.ListByLocation(f, lat, lng)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list spots"})
			return
		}
		c.JSON(http.StatusOK, spots)
		return
	}

	spots, err := h.service.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list spots"})
		return
	}
	c.JSON(http.StatusOK, spots)
}

// @Summary      Get spot
// @Tags         Spots
// @Produce      json
// @Param        id   path      string  true  "Spot ID"
// @Success      200  {object}  models.ParkingSpot
// @Failure      404  {object}  map[string]string
// @Router       /spots/{id} [get]
func (h *SpotHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}
	spot, err := h.service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get spot"})
		return
	}
	if spot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return
	}
	c.JSON(http.StatusOK, spot)
}

// @Summary      Create spot
// @Description  Hosts only
// @Tags         Spots
// @Accept       json
// @Produce      json
// @Param        spot  body      models.ParkingSpot  true  "Spot"
// @Success      201   {object}  models.ParkingSpot
// @Failure      403   {object}  map[string]string
// @Router       /spots [post]
func (h *SpotHandler) Create(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	if !authz.IsHost(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "host account required"})
		return
	}

	var spot models.ParkingSpot
	if err := c.ShouldBindJSON(&spot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spot.OwnerID = userID

	if err := h.service.Create(&spot); err != nil {
		log.Printf("[spot][create] service error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, spot)
}

// @Summary      Update spot
// @Tags         Spots
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Spot ID"
// @Param        spot  body      models.ParkingSpot  true  "Spot"
// @Success      200   {object}  models.ParkingSpot
// @Router       /spots/{id} [put]
func (h *SpotHandler) Update(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}

	existing, err := h.service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return
	}
	if existing.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your spot"})
		return
	}

	var spot models.ParkingSpot
	if err := c.ShouldBindJSON(&spot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spot.ID = id
	spot.OwnerID = existing.OwnerID

	if err := h.service.Update(&spot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update spot"})
		return
	}
	c.JSON(http.StatusOK, spot)
}

// @Summary      Delete spot
// @Tags         Spots
// @Param        id  path  string  true  "Spot ID"
// @Success      204
// @Router       /spots/{id} [delete]
func (h *SpotHandler) Delete(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}
	existing, err := h.service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return
	}
	if existing.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your spot"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete spot"})
		return
	}
	c.Status(http.StatusNoContent)
}
