package handler

import (
	orderapp "github.com/anascb/storefront/internal/application/order"
	"github.com/anascb/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderAdminHandler serves the back-office order endpoints
type OrderAdminHandler struct {
	BaseHandler
	orders *orderapp.AdminService
}

// NewOrderAdminHandler creates a new OrderAdminHandler
func NewOrderAdminHandler(orders *orderapp.AdminService) *OrderAdminHandler {
	return &OrderAdminHandler{orders: orders}
}

// RegisterRoutes registers the admin order routes
func (h *OrderAdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.Get)
	rg.PATCH("/orders/:id/status", h.UpdateStatus)
	rg.GET("/dashboard", h.Dashboard)
}

// List returns a filtered page of orders
func (h *OrderAdminHandler) List(c *gin.Context) {
	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one order with its status history
func (h *OrderAdminHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Identifiant de commande invalide")
		return
	}

	resp, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus applies one workflow transition to an order
func (h *OrderAdminHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Identifiant de commande invalide")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)

	resp, err := h.orders.UpdateStatus(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Dashboard returns the aggregate order stats
func (h *OrderAdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
