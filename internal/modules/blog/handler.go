package blog

import (
	"errors"
	"net/http"
	"strconv"

	"tourbooking/internal/domain"
	"tourbooking/internal/pkg/response"
	"tourbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Handler struct {
	blogRepo *repository.BlogRepository
}

func NewHandler(blogRepo *repository.BlogRepository) *Handler {
	return &Handler{blogRepo: blogRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.GetBlogs)
		blogs.GET("/:id", h.GetBlogByID)
	}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	blogs := r.Group("/blogs")
	{
		blogs.POST("", h.CreateBlog)
		blogs.PUT("/:id", h.UpdateBlog)
		blogs.DELETE("/:id", h.DeleteBlog)
	}
}

// GetBlogs lists published posts only; unpublished drafts are reachable
// through the admin surface.
func (h *Handler) GetBlogs(c *gin.Context) {
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

	blogs, total, err := h.blogRepo.GetAll(c.Request.Context(), true, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get blogs")
		return
	}

	response.Paginated(c, http.StatusOK, gin.H{"blogs": blogs}, (offset/limit)+1, limit, total)
}

func (h *Handler) GetBlogByID(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid blog ID")
		return
	}

	b, err := h.blogRepo.GetByID(c.Request.Context(), blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get blog")
		return
	}
	if !b.Published {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"blog": b})
}

func (h *Handler) CreateBlog(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	b := &domain.Blog{
		Title:     datatypes.NewJSONSlice(req.Title),
		Text:      datatypes.NewJSONSlice(req.Text),
		Images:    datatypes.NewJSONSlice(req.Images),
		Published: published,
	}

	if err := h.blogRepo.Create(c.Request.Context(), b); err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create blog")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"blog": b})
}

func (h *Handler) UpdateBlog(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid blog ID")
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	b, err := h.blogRepo.GetByID(c.Request.Context(), blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get blog")
		return
	}

	if req.Title != nil {
		b.Title = datatypes.NewJSONSlice(*req.Title)
	}
	if req.Text != nil {
		b.Text = datatypes.NewJSONSlice(*req.Text)
	}
	if req.Images != nil {
		b.Images = datatypes.NewJSONSlice(*req.Images)
	}
	if req.Published != nil {
		b.Published = *req.Published
	}

	if err := h.blogRepo.Update(c.Request.Context(), b); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update blog")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"blog": b})
}

func (h *Handler) DeleteBlog(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid blog ID")
		return
	}

	if err := h.blogRepo.Delete(c.Request.Context(), blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete blog")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
