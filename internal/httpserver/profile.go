package httpserver

import (
	"net/http"

	usersvc "gearph-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getProfile(c *gin.Context) {
	data, _ := currentSession(c)
	u, err := h.deps.UserSvc.Get(c.Request.Context(), data.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) updateProfile(c *gin.Context) {
	var in usersvc.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	data, _ := currentSession(c)
	u, err := h.deps.UserSvc.UpdateProfile(c.Request.Context(), data.UserID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *handlers) changePassword(c *gin.Context) {
	var in changePasswordRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "currentPassword and newPassword required")
		return
	}
	data, _ := currentSession(c)
	if err := h.deps.UserSvc.ChangePassword(c.Request.Context(), data.UserID, in.CurrentPassword, in.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
