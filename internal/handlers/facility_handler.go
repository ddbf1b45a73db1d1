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

type FacilityHandler struct {
	service *services.FacilityService
}

func NewFacilityHandler(service *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// @Summary      List facilities
// @Tags         Facilities
// @Produce      json
// @Param        facility_type  query     string  false  "Facility type"
// @Param        lat            query     number  false  "Latitude"
// @Param        lng            query     number  false  "Longitude"
// @Success      200            {array}   models.CommercialParkingFacility
// @Router       /facilities [get]
func (h *FacilityHandler) List(c *gin.Context) {
	facilityType := c.Query("facility_type")

	lat, haveLat := queryFloat(c, "lat")
	lng, haveLng := queryFloat(c, "lng")
	if haveLat && haveLng {
		facilities, err := h.service.ListByLocation(facilityType, lat, lng)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list facilities"})
			return
		}
		c.JSON(http.StatusOK, facilities)
		return
	}

	facilities, err := h.service.List(facilityType, 0, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list facilities"})
		return
	}
	c.JSON(http.StatusOK, facilities)
}

// @Summary      Get facility with live slot counts
// @Tags         Facilities
// @Produce      json
// @Param        id   path      string  true  "Facility ID"
// @Success      200  {object}  models.CommercialParkingFacility
// @Failure      404  {object}  map[string]string
// @Router       /facilities/{id} [get]
func (h *FacilityHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid facility id"})
		return
	}
	f, err := h.service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get facility"})
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Create facility
// @Description  Hosts only
// @Tags         Facilities
// @Accept       json
// @Produce      json
// @Param        facility  body      models.CommercialParkingFacility  true  "Facility"
// @Success      201       {object}  models.CommercialParkingFacility
// @Router       /facilities [post]
func (h *FacilityHandler) Create(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	if !authz.IsHost(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "host account required"})
		return
	}

	var f models.CommercialParkingFacility
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f.OwnerID = userID

	if err := h.service.Create(&f); err != nil {
		log.Printf("[facility][create] service error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary      List slots of a facility
// @Tags         Facilities
// @Produce      json
// @Param        id         path      string  true   "Facility ID"
// @Param        floor      query     int     false  "Floor filter"
// @Param        slot_type  query     string  false  "Slot type filter"
// @Param        available  query     bool    false  "Only free slots"
// @Success      200        {array}   models.CommercialParkingSlot
// @Router       /facilities/{id}/slots [get]
func (h *FacilityHandler) ListSlots(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid facility id"})
		return
	}
	f := repositories.SlotFilter{
		Floor:         queryInt(c, "floor", 0),
		SlotType:      c.Query("slot_type"),
		AvailableOnly: c.Query("available") == "true",
	}
	slots, err := h.service.ListSlots(id, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

type createSlotsRequest struct {
	Count    int    `json:"count" binding:"required,min=1,max=500"`
	Floor    int    `json:"floor" binding:"min=0"`
	SlotType string `json:"slot_type"`
}

// @Summary      Add numbered slots to a facility floor
// @Tags         Facilities
// @Accept       json
// @Produce      json
// @Param        id     path      string             true  "Facility ID"
// @Param        slots  body      createSlotsRequest  true  "Batch"
// @Success      201    {object}  map[string]string
// @Router       /facilities/{id}/slots [post]
func (h *FacilityHandler) CreateSlots(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid facility id"})
		return
	}

	facility, err := h.service.GetByID(id)
	if err != nil || facility == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}
	if facility.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your facility"})
		return
	}

	var req createSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slotType := req.SlotType
	if slotType == "" {
		slotType = models.SlotTypeRegular
	}

	if err := h.service.CreateSlots(id, req.Count, req.Floor, slotType); err != nil {
		log.Printf("[facility][slots] create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slots"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "slots created"})
}

// @Summary      Delete facility
// @Tags         Facilities
// @Param        id  path  string  true  "Facility ID"
// @Success      204
// @Router       /facilities/{id} [delete]
func (h *FacilityHandler) Delete(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid facility id"})
		return
	}
	facility, err := h.service.GetByID(id)
	if err != nil || facility == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}
	if facility.OwnerID != userID && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your facility"})
		return
	}
	if err := h.service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete facility"})
		return
	}
	c.Status(http.StatusNoContent)
}
