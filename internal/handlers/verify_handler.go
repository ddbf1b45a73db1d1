package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

type VerifyHandler struct {
	sms   *services.SMSService
	users services.UserService
}

func NewVerifyHandler(sms *services.SMSService, users services.UserService) *VerifyHandler {
	return &VerifyHandler{sms: sms, users: users}
}

// @Summary      Send phone verification code
// @Tags         Verification
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /verify/phone/send [post]
func (h *VerifyHandler) SendCode(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.users.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.PhoneVerified {
		c.JSON(http.StatusConflict, gin.H{"error": "phone already verified"})
		return
	}

	if err := h.sms.SendVerificationSMS(userID, user.Phone); err != nil {
		if errors.Is(err, services.ErrResendThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many codes requested, try again later"})
			return
		}
		log.Printf("[verify][send] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

type confirmCodeRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// @Summary      Confirm phone verification code
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        code  body      confirmCodeRequest  true  "6-digit code"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Failure      423   {object}  map[string]string
// @Router       /verify/phone/confirm [post]
func (h *VerifyHandler) ConfirmCode(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req confirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.sms.ConfirmVerificationCode(userID, req.Code)
	switch {
	case errors.Is(err, services.ErrCodeExpired):
		c.JSON(http.StatusGone, gin.H{"error": "code expired, request a new one"})
	case errors.Is(err, services.ErrTooManyAttempts):
		c.JSON(http.StatusLocked, gin.H{"error": "too many wrong codes, request a new one"})
	case errors.Is(err, services.ErrCodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong code"})
	case err != nil:
		log.Printf("[verify][confirm] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm code"})
	case ok:
		c.JSON(http.StatusOK, gin.H{"message": "phone verified"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong code"})
	}
}
