package httpserver

import (
	"net/http"

	"gearph-api/internal/domain"
	ordersvc "gearph-api/internal/service/order"
	productsvc "gearph-api/internal/service/product"

	"github.com/gin-gonic/gin"
)

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) adminGetOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *handlers) adminUpdateOrderStatus(c *gin.Context) {
	var in ordersvc.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.deps.ProductSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.deps.ProductSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) adminListUsers(c *gin.Context) {
	users, err := h.deps.UserSvc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *handlers) adminDeleteUser(c *gin.Context) {
	data, _ := currentSession(c)
	if err := h.deps.UserSvc.Delete(c.Request.Context(), data.UserID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) adminGetSettings(c *gin.Context) {
	s, err := h.deps.SettingsSvc.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}

func (h *handlers) adminUpdateSettings(c *gin.Context) {
	var in domain.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s, err := h.deps.SettingsSvc.Update(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}

func (h *handlers) adminStats(c *gin.Context) {
	d, err := h.deps.StatsSvc.Compute(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
