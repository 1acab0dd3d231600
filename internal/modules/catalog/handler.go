package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"tourbooking/internal/pkg/response"
	"tourbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public catalog routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tours := r.Group("/tours")
	{
		tours.GET("", h.GetTours)
		tours.GET("/:id", h.GetTourByID)
	}
}

// RegisterAdminRoutes registers tour management under an admin-guarded group.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	tours := r.Group("/tours")
	{
		tours.GET("", h.GetToursAdmin)
		tours.POST("", h.CreateTour)
		tours.PUT("/:id", h.UpdateTour)
		tours.PATCH("/:id/status", h.UpdateTourStatus)
		tours.DELETE("/:id", h.DisableTour)
	}
}

func parseFilters(c *gin.Context) repository.TourFilters {
	var f repository.TourFilters

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			f.MinPrice = val
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			f.MaxPrice = val
		}
	}

	f.Limit = 20
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}
	return f
}

func (h *Handler) GetTours(c *gin.Context) {
	f := parseFilters(c)

	tours, total, err := h.service.ListPublic(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get tours")
		return
	}

	h.writeList(c, tours, total, f)
}

func (h *Handler) GetToursAdmin(c *gin.Context) {
	f := parseFilters(c)

	tours, total, err := h.service.ListAdmin(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get tours")
		return
	}

	h.writeList(c, tours, total, f)
}

func (h *Handler) writeList(c *gin.Context, tours interface{}, total int64, f repository.TourFilters) {
	page := (f.Offset / f.Limit) + 1
	response.Paginated(c, http.StatusOK, gin.H{"tours": tours}, page, f.Limit, total)
}

func (h *Handler) GetTourByID(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	tour, err := h.service.GetByID(c.Request.Context(), tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get tour")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *Handler) CreateTour(c *gin.Context) {
	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	tour, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidLocalized) {
			response.Error(c, http.StatusBadRequest, "INVALID_LOCALIZATION", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create tour")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tour": tour})
}

func (h *Handler) UpdateTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	var req UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	tour, err := h.service.Update(c.Request.Context(), tourID, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
		case errors.Is(err, ErrInvalidLocalized):
			response.Error(c, http.StatusBadRequest, "INVALID_LOCALIZATION", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update tour")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *Handler) UpdateTourStatus(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), tourID, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be one of: draft, disabled, active")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update tour status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) DisableTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	if err := h.service.Disable(c.Request.Context(), tourID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to disable tour")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"disabled": true})
}
