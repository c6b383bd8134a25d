package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/blog/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type BlogHandler struct {
	blogService service.ServiceInterface
}

func NewBlogHandler(blogService service.ServiceInterface) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListPublished GET /api/v1/blogs?category=&author=&page=&limit=
func (h *BlogHandler) ListPublished(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)
	filter := model.ListFilter{
		Category:   strings.TrimSpace(c.Query("category")),
		AuthorSlug: strings.TrimSpace(c.Query("author")),
		Page:       page,
		Limit:      limit,
	}

	blogs, total, err := h.blogService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, blogs, &response.Meta{Page: page, Limit: limit, Total: total})
}

// Featured GET /api/v1/blogs/featured
func (h *BlogHandler) Featured(c *gin.Context) {
	blog, err := h.blogService.Featured(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// GetBySlug GET /api/v1/blogs/slug/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// Next GET /api/v1/blogs/slug/:slug/next
func (h *BlogHandler) Next(c *gin.Context) {
	blog, err := h.blogService.NextOrOldest(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// GetByID GET /api/v1/blogs/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c.Param("id"))
	if err != nil {
		response.NotFound(c, "blog not found")
		return
	}

	blog, err := h.blogService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// Like POST /api/v1/content/blog/like
func (h *BlogHandler) Like(c *gin.Context) {
	h.like(c, h.blogService.Like)
}

// Unlike POST /api/v1/content/blog/unlike
func (h *BlogHandler) Unlike(c *gin.Context) {
	h.like(c, h.blogService.Unlike)
}

type likeFunc func(ctx context.Context, slug, clientKey string) (*model.LikeResponse, error)

// like keys the caller by user id when signed in, else by ip and user agent.
func (h *BlogHandler) like(c *gin.Context, fn likeFunc) {
	var req model.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "slug is required")
		return
	}

	userID := ""
	if identity := session.FromContext(c.Request.Context()); identity != nil {
		userID = identity.UserID.String()
	}
	clientKey := utils.ClientFingerprint(userID, utils.ExtractClientIP(c), c.Request.UserAgent())

	resp, err := fn(c.Request.Context(), req.Slug, clientKey)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// AUTHORING ENDPOINTS
// =====================================================

// Create POST /api/v1/content/blog
func (h *BlogHandler) Create(c *gin.Context) {
	var req model.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	blog, err := h.blogService.CreateBlog(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, blog)
}

// Update PATCH /api/v1/content/blog?id=
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c.Query("id"))
	if err != nil {
		response.BadRequest(c, "invalid blog id")
		return
	}

	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	blog, err := h.blogService.UpdateBlog(c.Request.Context(), session.FromContext(c.Request.Context()), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// Recover POST /api/v1/content/blog/recover
func (h *BlogHandler) Recover(c *gin.Context) {
	var req model.RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	blog, err := h.blogService.RecoverBlog(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, blog)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// AdminList GET /api/v1/admin/posts?status=&q=&page=&limit=
func (h *BlogHandler) AdminList(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), 50, 200)
	filter := model.AdminFilter{
		Status: model.Status(c.Query("status")),
		Search: strings.TrimSpace(c.Query("q")),
		Page:   page,
		Limit:  limit,
	}

	blogs, total, err := h.blogService.AdminList(c.Request.Context(), session.FromContext(c.Request.Context()), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, blogs, &response.Meta{Page: page, Limit: limit, Total: total})
}
