package httpserver

import (
	"net/http"

	checkoutsvc "gearph-api/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getCheckout(c *gin.Context) {
	draft, err := h.deps.CheckoutSvc.Get(c.Request.Context(), currentToken(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft, "step": draft.Reached()})
}

func (h *handlers) advanceCheckout(c *gin.Context) {
	var in checkoutsvc.AdvanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	draft, err := h.deps.CheckoutSvc.Advance(c.Request.Context(), currentToken(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft, "step": draft.Reached()})
}

func (h *handlers) completeCheckout(c *gin.Context) {
	data, _ := currentSession(c)
	var userID *string
	if data != nil && data.UserID != "" {
		id := data.UserID
		userID = &id
	}
	result, err := h.deps.CheckoutSvc.Complete(c.Request.Context(), currentToken(c), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderCreatedResponse(result))
}
