package handler

import (
	catalogapp "github.com/anascb/storefront/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler serves the public browsing endpoints
type CatalogHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *catalogapp.ProductService) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// RegisterRoutes registers the public catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.GET("/products/:slug", h.GetBySlug)
	rg.GET("/products/:slug/similar", h.Similar)
	rg.GET("/categories", h.Categories)
}

// List returns the filtered, sorted product listing
func (h *CatalogHandler) List(c *gin.Context) {
	var req catalogapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.products.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetBySlug returns one product with its variants
func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Similar returns products from the same category
func (h *CatalogHandler) Similar(c *gin.Context) {
	products, err := h.products.Similar(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Categories returns all categories in display order
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// CatalogAdminHandler serves the back-office catalog endpoints
type CatalogAdminHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewCatalogAdminHandler creates a new CatalogAdminHandler
func NewCatalogAdminHandler(products *catalogapp.ProductService) *CatalogAdminHandler {
	return &CatalogAdminHandler{products: products}
}

// RegisterRoutes registers the admin catalog routes
func (h *CatalogAdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
	rg.PUT("/products/:id/variants/:variantId/stock", h.SetStock)
	rg.POST("/categories", h.CreateCategory)
}

// Create adds a product with its variants
func (h *CatalogAdminHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update patches a product's mutable fields
func (h *CatalogAdminHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Identifiant de produit invalide")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product and its variants
func (h *CatalogAdminHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Identifiant de produit invalide")
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetStock replaces one variant's stock level
func (h *CatalogAdminHandler) SetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Identifiant de produit invalide")
		return
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		h.BadRequest(c, "Identifiant de variante invalide")
		return
	}

	var req catalogapp.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.SetStock(c.Request.Context(), productID, variantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// CreateCategory adds a category
func (h *CatalogAdminHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.products.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}
