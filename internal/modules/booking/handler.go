package booking

import (
	"net/http"
	"strconv"
	"time"

	"tourbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessions *SessionStore
}

func NewHandler(sessions *SessionStore) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	sess := rg.Group("/booking/session")
	{
		sess.GET("", h.GetSession)
		sess.PUT("/date", h.UpdateDate)
		sess.PUT("/travelers", h.UpdateTravelers)
		sess.POST("/activities", h.SetTempActivities)
		sess.DELETE("", h.ResetSession)
	}
}

// GetSession returns the shared trip details. When tour_id is given the
// temp activity slot for that tour is consumed as part of the read.
func (h *Handler) GetSession(c *gin.Context) {
	userID := c.GetInt64("user_id")

	sel := h.sessions.Selection(userID)
	resp := SessionResponse{
		SelectedDate: sel.SelectedDate,
		Travelers:    sel.Travelers,
		IsComplete:   Evaluate(sel, time.Now()).IsComplete,
	}

	if tourIDStr := c.Query("tour_id"); tourIDStr != "" {
		tourID, err := strconv.ParseInt(tourIDStr, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
			return
		}
		if acts, ok := h.sessions.ConsumeTempActivities(userID, tourID); ok {
			resp.Activities = acts
		}
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) UpdateDate(c *gin.Context) {
	var req UpdateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	h.sessions.UpdateDate(userID, req.Date)

	response.Success(c, http.StatusOK, gin.H{"selected_date": req.Date})
}

func (h *Handler) UpdateTravelers(c *gin.Context) {
	var req UpdateTravelersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	counts := travelersFromRequest(req)
	if err := h.sessions.UpdateTravelers(userID, counts); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_TRAVELERS", "At least 2 adults are required; counts cannot be negative")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"travelers": counts})
}

func (h *Handler) SetTempActivities(c *gin.Context) {
	var req SetTempActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	h.sessions.SetTempActivities(userID, req.TourID, req.Activities)

	response.Success(c, http.StatusOK, gin.H{"tour_id": req.TourID})
}

func (h *Handler) ResetSession(c *gin.Context) {
	h.sessions.Reset(c.GetInt64("user_id"))
	response.Success(c, http.StatusOK, gin.H{"reset": true})
}
