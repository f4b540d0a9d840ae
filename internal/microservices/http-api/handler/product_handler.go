package handler

import (
	"context"
	"net/http"

	"skillhub/internal/microservices/http-api/dto"
	"skillhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
	storyService   service.UserStoryService
}

func NewProductHandler(productService service.ProductService, storyService service.UserStoryService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storyService:   storyService,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup, guard WriteGuard) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/user-stories", h.ListUserStories)

	rg.POST("", guarded(guard, service.CollectionProducts, h.Create)...)
	rg.PUT("/:id", guarded(guard, service.CollectionProducts, h.Update)...)
	rg.DELETE("/:id", guarded(guard, service.CollectionProducts, h.Delete)...)
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, total, err := h.productService.List(ctx, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(list, int(total), page, pageSize))
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	product, err := h.productService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListUserStories GET /api/products/:id/user-stories
func (h *ProductHandler) ListUserStories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.storyService.ListByProduct(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToUserStoryResponses(list))
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	product := req.ToModel()
	if err := h.productService.Create(ctx, product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	product, err := h.productService.Update(ctx, c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	product, err := h.productService.Delete(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
