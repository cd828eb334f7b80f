package handler

import (
	"github.com/anascb/storefront/internal/application/checkout"
	orderapp "github.com/anascb/storefront/internal/application/order"
	"github.com/anascb/storefront/internal/domain/cart"
	"github.com/anascb/storefront/internal/domain/order"
	"github.com/anascb/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutHandler serves order placement and the public tracking page
type CheckoutHandler struct {
	BaseHandler
	placement *checkout.PlacementService
	validator *checkout.Validator
	orders    *orderapp.AdminService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(placement *checkout.PlacementService, validator *checkout.Validator, orders *orderapp.AdminService) *CheckoutHandler {
	return &CheckoutHandler{
		placement: placement,
		validator: validator,
		orders:    orders,
	}
}

// RegisterRoutes registers the public checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.PlaceOrder)
	rg.GET("/orders/:number", h.Track)
}

// RegisterProtectedRoutes registers the routes requiring a logged-in client
func (h *CheckoutHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me/orders", h.MyOrders)
}

// BreakdownRequest is the client-computed pricing recap. The server
// recomputes it before persisting; it is accepted only for mismatch
// logging.
type BreakdownRequest struct {
	Subtotal    decimal.Decimal `json:"sous_total"`
	ShippingFee decimal.Decimal `json:"livraison"`
	Discount    decimal.Decimal `json:"remise"`
	Total       decimal.Decimal `json:"total"`
}

// PlaceOrderRequest is the full checkout submission
type PlaceOrderRequest struct {
	Client    checkout.Form    `json:"client" binding:"required"`
	Items     []cart.Item      `json:"articles" binding:"required"`
	Breakdown BreakdownRequest `json:"totaux"`
}

// PlaceOrder handles the checkout submission
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Corps de requête invalide")
		return
	}

	form, err := h.validator.Validate(req.Client)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var userID *uuid.UUID
	if id := middleware.GetUserID(c); id != uuid.Nil {
		userID = &id
	}

	result, err := h.placement.PlaceOrder(c.Request.Context(), checkout.PlaceOrderInput{
		Form:  form,
		Items: req.Items,
		Breakdown: order.Breakdown{
			Subtotal:    req.Breakdown.Subtotal,
			ShippingFee: req.Breakdown.ShippingFee,
			Discount:    req.Breakdown.Discount,
			Total:       req.Breakdown.Total,
		},
		UserID: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// MyOrdersQuery carries the account page's paging parameters
type MyOrdersQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// MyOrders lists the logged-in customer's own orders, newest first
func (h *CheckoutHandler) MyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.NotFound(c, "Utilisateur introuvable")
		return
	}

	var q MyOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Paramètres de pagination invalides")
		return
	}

	page, err := h.orders.ListForUser(c.Request.Context(), userID, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Track returns an order by its number for the confirmation page
func (h *CheckoutHandler) Track(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Numéro de commande requis")
		return
	}

	resp, err := h.orders.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
