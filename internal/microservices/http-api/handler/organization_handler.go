package handler

import (
	"context"
	"net/http"

	"skillhub/internal/microservices/http-api/dto"
	"skillhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	orgService     service.OrganizationService
	productService service.ProductService
}

func NewOrganizationHandler(orgService service.OrganizationService, productService service.ProductService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:     orgService,
		productService: productService,
	}
}

// RegisterRoutes registers organization routes under /api/organizations
func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup, guard WriteGuard) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/products", h.ListProducts)

	rg.POST("", guarded(guard, service.CollectionOrganizations, h.Create)...)
	rg.PUT("/:id", guarded(guard, service.CollectionOrganizations, h.Update)...)
	rg.DELETE("/:id", guarded(guard, service.CollectionOrganizations, h.Delete)...)
}

// List GET /api/organizations?page=1&page_size=20
func (h *OrganizationHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, total, err := h.orgService.List(ctx, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(list, int(total), page, pageSize))
}

// Get GET /api/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	org, err := h.orgService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// ListProducts GET /api/organizations/:id/products
func (h *OrganizationHandler) ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.productService.ListByOrganization(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create POST /api/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	org := req.ToModel()
	if err := h.orgService.Create(ctx, org); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

// Update PUT /api/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req dto.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	org, err := h.orgService.Update(ctx, c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// Delete DELETE /api/organizations/:id
func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	org, err := h.orgService.Delete(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}
