package httpserver

import (
	"net/http"

	"gearph-api/internal/domain"
	cartsvc "gearph-api/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalCents int64             `json:"totalCents"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalCents: cart.TotalCents(),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.CartSvc.Get(c.Request.Context(), currentToken(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) addToCart(c *gin.Context) {
	var in cartsvc.AddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cart, err := h.deps.CartSvc.Add(c.Request.Context(), currentToken(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

type cartQuantityRequest struct {
	domain.CartKey
	Quantity int `json:"quantity"`
}

func (h *handlers) updateCartQuantity(c *gin.Context) {
	var in cartQuantityRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.ProductID == "" {
		badRequest(c, "productId required")
		return
	}
	cart, err := h.deps.CartSvc.SetQuantity(c.Request.Context(), currentToken(c), in.CartKey, in.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) removeFromCart(c *gin.Context) {
	var in domain.CartKey
	if err := c.ShouldBindJSON(&in); err != nil || in.ProductID == "" {
		badRequest(c, "productId required")
		return
	}
	cart, err := h.deps.CartSvc.Remove(c.Request.Context(), currentToken(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}
