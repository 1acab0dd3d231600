package checkout

import (
	"encoding/json"
	"errors"
	"io"
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

// RegisterRoutes mounts the authenticated checkout endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.CreateOrder)
}

// RegisterGatewayRoutes mounts the gateway-facing endpoints. The
// callback is public; the status lookup requires auth middleware on the
// group it is mounted under.
func (h *Handler) RegisterGatewayRoutes(public, authed *gin.RouterGroup) {
	public.POST("/callback", h.Callback)
	authed.GET("/status/:orderId", h.OrderStatus)
	authed.GET("/orders", h.ListOrders)
}

// RegisterAdminRoutes mounts the order cancel endpoint.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:orderId/cancel", h.CancelOrder)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	userID := c.GetInt64("user_id")

	res, err := h.service.CreateOrder(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileIncomplete):
			response.Error(c, http.StatusBadRequest, "PROFILE_INCOMPLETE", "Complete your name, email and phone before checkout")
		case errors.Is(err, ErrEmptyCart):
			response.Error(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty")
		case errors.Is(err, booking.ErrIncompleteBooking):
			response.Error(c, http.StatusBadRequest, "INCOMPLETE_BOOKING", "Incomplete booking details")
		case errors.Is(err, ErrGateway):
			response.Error(c, http.StatusBadGateway, "PAYMENT_ERROR", "Payment system error")
		default:
			response.Error(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Failed to create payment order")
		}
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// Callback accepts the gateway webhook. The raw body is kept verbatim
// for the audit trail before any parsing happens.
func (h *Handler) Callback(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Unreadable request body")
		return
	}

	var req CallbackRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid callback payload")
		return
	}
	if req.Body.OrderID == "" || req.Body.OrderStatus.Key == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing order_id or status")
		return
	}

	cb := Callback{
		OrderID:       req.Body.OrderID,
		Status:        req.Body.OrderStatus.Key,
		TransactionID: req.Body.PaymentDetail.TransactionID,
		RejectReason:  req.Body.PaymentDetail.RejectReason,
		RawPayload:    raw,
	}

	if err := h.service.HandleCallback(c.Request.Context(), cb); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown payment order")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CALLBACK_FAILED", "Failed to process callback")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

func (h *Handler) ListOrders(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 1 {
		offset = (v - 1) * limit
	}

	orders, err := h.service.ListOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load payment orders")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) CancelOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	if err := h.service.CancelOrder(c.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment order not found")
		case errors.Is(err, ErrOrderTerminal):
			response.Error(c, http.StatusConflict, "ORDER_SETTLED", "Settled orders cannot be cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to cancel payment order")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) OrderStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")
	orderID := c.Param("orderId")

	res, err := h.service.GetOrderStatus(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment order not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this order")
		default:
			response.Error(c, http.StatusInternalServerError, "STATUS_FAILED", "Failed to load order status")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}
