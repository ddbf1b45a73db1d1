package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

// IntegrationsHandler manages the host's Telegram notification link.
type IntegrationsHandler struct {
	users    repositories.UserRepository
	telegram *services.TelegramService
}

func NewIntegrationsHandler(users repositories.UserRepository, telegram *services.TelegramService) *IntegrationsHandler {
	return &IntegrationsHandler{users: users, telegram: telegram}
}

type telegramLinkRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
	Notify bool  `json:"notify"`
}

// @Summary      Link Telegram notifications
// @Tags         Integrations
// @Accept       json
// @Produce      json
// @Param        link  body      telegramLinkRequest  true  "Chat link"
// @Success      200   {object}  map[string]string
// @Router       /integrations/telegram [put]
func (h *IntegrationsHandler) LinkTelegram(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req telegramLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateTelegramLink(userID, req.ChatID, req.Notify); err != nil {
		log.Printf("[integrations][telegram] link failed userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link telegram"})
		return
	}

	if req.Notify && h.telegram != nil {
		if err := h.telegram.SendMessage(req.ChatID, "ParkEzy notifications enabled for this chat."); err != nil {
			log.Printf("[integrations][telegram] test message failed chatID=%d: %v", req.ChatID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "telegram linked"})
}
