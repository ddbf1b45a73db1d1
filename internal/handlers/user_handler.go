package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone_number" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	IsHost   bool   `json:"is_host"`
}

// @Summary      Register
// @Description  Creates a driver or host account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      registerRequest  true  "Account details"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := authz.RoleDriver
	if req.IsHost {
		role = authz.RoleHost
	}
	user := &models.User{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		RoleID: role,
	}
	if err := h.service.CreateUserWithPassword(user, req.Password); err != nil {
		log.Printf("[user][register] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary      Current profile
// @Tags         Users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.service.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone_number"`
}

// @Summary      Update profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  models.User
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.service.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" && req.Phone != user.Phone {
		user.Phone = req.Phone
		// a new number has to be verified again
		user.PhoneVerified = false
	}
	if err := h.service.UpdateUser(user); err != nil {
		log.Printf("[user][update] service error userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Switch role
// @Description  Toggles the account between driver and host
// @Tags         Users
// @Produce      json
// @Success      200  {object}  models.User
// @Router       /users/switch-role [post]
func (h *UserHandler) SwitchRole(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.service.SwitchRole(userID)
	if err != nil {
		log.Printf("[user][switch-role] service error userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch role"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      List users
// @Description  Admin only
// @Tags         Users
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {array}   models.User
// @Failure      403     {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	_, roleID := getUserAndRole(c)
	if !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)
	users, err := h.service.ListUsers(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	count, _ := h.service.GetUserCount()
	c.JSON(http.StatusOK, gin.H{"users": users, "total": count})
}

// @Summary      Delete user
// @Description  Admin only
// @Tags         Users
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	_, roleID := getUserAndRole(c)
	if !authz.IsAdmin(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}
