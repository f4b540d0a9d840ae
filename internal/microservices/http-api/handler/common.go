package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"skillhub/internal/microservices/http-api/dto"
	"skillhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// WriteGuard returns the middleware chain protecting write routes of a collection
type WriteGuard func(collection string) gin.HandlersChain

// OpenGuard leaves write routes unprotected
func OpenGuard(string) gin.HandlersChain { return nil }

func guarded(guard WriteGuard, collection string, h gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{h}
	}
	return append(guard(collection), h)
}

// parsePagination reads ?page=1&page_size=20 with the usual bounds
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.MessageResponse{Message: message})
}

// respondError maps service errors onto status codes with a {message} body
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondMessage(c, http.StatusBadRequest, service.ErrNotFound.Error())
	case errors.Is(err, service.ErrValidation):
		respondMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondMessage(c, http.StatusConflict, err.Error())
	default:
		slog.Error("request_failed", "path", c.FullPath(), "error", err.Error())
		respondMessage(c, http.StatusInternalServerError, "internal server error")
	}
}
