package handler

import (
	promoapp "github.com/anascb/storefront/internal/application/promo"
	"github.com/gin-gonic/gin"
)

// PromoHandler serves the public promo verification endpoint
type PromoHandler struct {
	BaseHandler
	promos *promoapp.Service
}

// NewPromoHandler creates a new PromoHandler
func NewPromoHandler(promos *promoapp.Service) *PromoHandler {
	return &PromoHandler{promos: promos}
}

// RegisterRoutes registers the public promo routes
func (h *PromoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/promo/verify", h.Verify)
}

// Verify checks a promo code against the cart subtotal
func (h *PromoHandler) Verify(c *gin.Context) {
	var req promoapp.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.promos.Verify(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PromoAdminHandler serves the back-office promo endpoints
type PromoAdminHandler struct {
	BaseHandler
	promos *promoapp.Service
}

// NewPromoAdminHandler creates a new PromoAdminHandler
func NewPromoAdminHandler(promos *promoapp.Service) *PromoAdminHandler {
	return &PromoAdminHandler{promos: promos}
}

// RegisterRoutes registers the admin promo routes
func (h *PromoAdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/promos", h.List)
	rg.POST("/promos", h.Create)
	rg.DELETE("/promos/:code", h.Deactivate)
}

// List returns every promo code
func (h *PromoAdminHandler) List(c *gin.Context) {
	codes, err := h.promos.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, codes)
}

// Create adds a promo code
func (h *PromoAdminHandler) Create(c *gin.Context) {
	var req promoapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	code, err := h.promos.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, code)
}

// Deactivate disables a promo code without deleting its usage history
func (h *PromoAdminHandler) Deactivate(c *gin.Context) {
	code, err := h.promos.Deactivate(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}
