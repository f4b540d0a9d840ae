package handler

import (
	"context"
	"net/http"

	"skillhub/internal/microservices/http-api/dto"
	"skillhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillService service.SkillService
}

func NewSkillHandler(skillService service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (h *SkillHandler) RegisterRoutes(rg *gin.RouterGroup, guard WriteGuard) {
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Get)

	rg.POST("", guarded(guard, service.CollectionSkills, h.Create)...)
	rg.PUT("/:id", guarded(guard, service.CollectionSkills, h.Update)...)
	rg.DELETE("/:id", guarded(guard, service.CollectionSkills, h.Delete)...)
}

// List GET /api/skills
func (h *SkillHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, total, err := h.skillService.List(ctx, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(list, int(total), page, pageSize))
}

// Search GET /api/skills/search?q=go
func (h *SkillHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondMessage(c, http.StatusBadRequest, "query parameter q is required")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.skillService.Search(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /api/skills/:id
func (h *SkillHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	skill, err := h.skillService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

// Create POST /api/skills
func (h *SkillHandler) Create(c *gin.Context) {
	var req dto.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	skill := req.ToModel()
	if err := h.skillService.Create(ctx, skill); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// Update PUT /api/skills/:id
func (h *SkillHandler) Update(c *gin.Context) {
	var req dto.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	skill, err := h.skillService.Update(ctx, c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

// Delete DELETE /api/skills/:id
func (h *SkillHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	skill, err := h.skillService.Delete(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}
