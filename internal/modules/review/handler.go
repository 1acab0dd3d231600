package review

import (
	"errors"
	"net/http"
	"strconv"

	"tourbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/tours/:id/ratings", h.GetByTour)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/ratings", h.Create)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.DELETE("/ratings/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	rating, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Stars must be between 1 and 5")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
		case errors.Is(err, ErrConflict):
			response.Error(c, http.StatusConflict, "ALREADY_RATED", "You have already rated this tour")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create rating")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"rating": rating})
}

func (h *Handler) GetByTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}
	offset := 0
	if v := c.Query("page"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			offset = (val - 1) * limit
		}
	}

	ratings, avg, err := h.service.GetByTour(c.Request.Context(), tourID, limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get ratings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"ratings": ratings,
		"average": avg,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	ratingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rating ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ratingID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Rating not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete rating")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
