package httpserver

import (
	"net/http"

	"gearph-api/internal/location"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *handlers) searchProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) listRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": location.Regions()})
}

func (h *handlers) listCities(c *gin.Context) {
	region := c.Query("region")
	citiesOf := location.CitiesOf(region)
	if citiesOf == nil {
		badRequest(c, "unknown region")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": citiesOf})
}

func (h *handlers) listBarangays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"barangays": location.BarangaysOf(c.Query("city"))})
}
