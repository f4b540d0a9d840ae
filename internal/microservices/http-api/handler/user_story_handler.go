package handler

import (
	"context"
	"net/http"

	"skillhub/internal/microservices/http-api/dto"
	"skillhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserStoryHandler struct {
	storyService service.UserStoryService
}

func NewUserStoryHandler(storyService service.UserStoryService) *UserStoryHandler {
	return &UserStoryHandler{storyService: storyService}
}

func (h *UserStoryHandler) RegisterRoutes(rg *gin.RouterGroup, guard WriteGuard) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	rg.POST("", guarded(guard, service.CollectionUserStories, h.Create)...)
	rg.PUT("/:id", guarded(guard, service.CollectionUserStories, h.Update)...)
	rg.DELETE("/:id", guarded(guard, service.CollectionUserStories, h.Delete)...)
}

// List GET /api/user-stories
func (h *UserStoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, total, err := h.storyService.List(ctx, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromModelsToUserStoryResponses(list), int(total), page, pageSize))
}

// Get GET /api/user-stories/:id
func (h *UserStoryHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	story, err := h.storyService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserStoryResponse(story))
}

// Create POST /api/user-stories
func (h *UserStoryHandler) Create(c *gin.Context) {
	var req dto.UserStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	story := req.ToModel()
	if err := h.storyService.Create(ctx, story); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserStoryResponse(story))
}

// Update PUT /api/user-stories/:id
func (h *UserStoryHandler) Update(c *gin.Context) {
	var req dto.UserStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	story, err := h.storyService.Update(ctx, c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserStoryResponse(story))
}

// Delete DELETE /api/user-stories/:id
func (h *UserStoryHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	story, err := h.storyService.Delete(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserStoryResponse(story))
}
