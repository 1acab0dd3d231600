package cart

import (
	"errors"
	"net/http"
	"strconv"

	"tourbooking/internal/modules/booking"
	"tourbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.List)
		cart.POST("", h.AddPartial)
		cart.POST("/book", h.AddBooking)
		cart.PATCH("/:id", h.UpdateItem)
		cart.DELETE("/:id", h.RemoveItem)
		cart.PUT("/order", h.Reorder)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// AddPartial is the tour-detail "Add to Cart" path: it never blocks on
// incomplete details, so users can bookmark a tour.
func (h *Handler) AddPartial(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	item, err := h.service.AddPartialBooking(c.Request.Context(), userID, req.TourID, req.Activities)
	if err != nil {
		h.writeAddError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

// AddBooking is the strict "book now" path.
func (h *Handler) AddBooking(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	item, err := h.service.AddBooking(c.Request.Context(), userID, req.TourID, req.Activities)
	if err != nil {
		if errors.Is(err, booking.ErrIncompleteBooking) {
			response.Error(c, http.StatusBadRequest, "INCOMPLETE_BOOKING", err.Error())
			return
		}
		h.writeAddError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	item, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Cart item not found")
		case errors.Is(err, ErrTourImmutable):
			response.Error(c, http.StatusBadRequest, "TOUR_IMMUTABLE", "The tour of a cart item cannot be changed")
		case errors.Is(err, ErrItemAlreadyBooked):
			response.Error(c, http.StatusConflict, "ALREADY_BOOKED", "Booked items cannot be edited")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "INVALID_TRAVELERS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update cart item")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID")
		return
	}

	userID := c.GetInt64("user_id")
	res := h.service.Remove(c.Request.Context(), userID, itemID)

	// Soft failure by design: 200 with success=false keeps cart UIs alive.
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	if err := h.service.Reorder(c.Request.Context(), userID, req.ItemIDs); err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "INVALID_ORDER", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "REORDER_FAILED", "Failed to reorder cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reordered": true})
}

func (h *Handler) writeAddError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTourNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
	case errors.Is(err, ErrTourNotBookable):
		response.Error(c, http.StatusBadRequest, "TOUR_NOT_BOOKABLE", "This tour is not open for booking")
	default:
		response.Error(c, http.StatusInternalServerError, "CART_ERROR", "Failed to add tour to cart")
	}
}
