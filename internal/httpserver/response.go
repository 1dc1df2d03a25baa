package httpserver

import (
	"errors"
	"net/http"

	"gearph-api/internal/domain"
	usersvc "gearph-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the HTTP taxonomy: validation
// 400, bad credentials 401, not found 404, duplicates 409, everything
// else a generic 500 with the detail kept server-side.
func (h *handlers) respondError(c *gin.Context, err error) {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, usersvc.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		h.logger.Printf("http: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
