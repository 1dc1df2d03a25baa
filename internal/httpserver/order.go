package httpserver

import (
	"net/http"

	ordersvc "gearph-api/internal/service/order"

	"github.com/gin-gonic/gin"
)

// orderCreatedResponse is the confirmation payload the client carries
// to the confirmation view.
func orderCreatedResponse(result *ordersvc.CreateResult) gin.H {
	return gin.H{
		"success": true,
		"order": gin.H{
			"id":            result.Order.ID,
			"orderNumber":   result.Order.OrderNumber,
			"totalCents":    result.Order.TotalCents,
			"paymentMethod": result.Order.PaymentMethod,
		},
		"paymentInstructions": result.Instructions,
	}
}

// createOrder accepts a fully assembled checkout submission. It works
// without a session so guests can order; a signed-in caller becomes the
// order's owner.
func (h *handlers) createOrder(c *gin.Context) {
	var in ordersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if data, ok := currentSession(c); ok && data.UserID != "" {
		id := data.UserID
		in.UserID = &id
	}
	result, err := h.deps.OrderSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderCreatedResponse(result))
}

func (h *handlers) listOwnOrders(c *gin.Context) {
	data, _ := currentSession(c)
	orders, err := h.deps.OrderSvc.ListByUser(c.Request.Context(), data.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
