package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// @Summary      Host dashboard summary
// @Description  Bookings, revenue and recent sessions across everything the host owns
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  services.HostReport
// @Failure      403  {object}  map[string]string
// @Router       /reports/host [get]
func (h *ReportHandler) HostSummary(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	if !authz.IsHost(roleID) && !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "host account required"})
		return
	}
	report, err := h.service.HostSummary(userID)
	if err != nil {
		log.Printf("[report][host] service error userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
