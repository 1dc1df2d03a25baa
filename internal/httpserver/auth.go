package httpserver

import (
	"net/http"

	"gearph-api/internal/domain"
	"gearph-api/internal/session"
	usersvc "gearph-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

func (h *handlers) signup(c *gin.Context) {
	var in usersvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := h.deps.UserSvc.Signup(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.startSession(c, u); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "email and password required")
		return
	}
	u, err := h.deps.UserSvc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.startSession(c, u); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) logout(c *gin.Context) {
	if token := currentToken(c); token != "" {
		if err := h.deps.Sessions.Delete(c.Request.Context(), token); err != nil {
			h.respondError(c, err)
			return
		}
	}
	c.SetCookie(h.deps.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// startSession issues a fresh session for the signed-in user. Any guest
// session the browser held is replaced; its cart stays behind under the
// old token and is abandoned, matching the original's device-local
// cart behavior.
func (h *handlers) startSession(c *gin.Context, u *domain.User) error {
	token, err := h.deps.Sessions.Create(c.Request.Context(), session.Data{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})
	if err != nil {
		return err
	}
	if old := currentToken(c); old != "" {
		_ = h.deps.Sessions.Delete(c.Request.Context(), old)
	}
	c.SetCookie(h.deps.CookieName, token, int(h.deps.Sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}
