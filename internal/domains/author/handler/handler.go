package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/author/model"
	"infinite-ideas-hub/internal/domains/author/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

type AuthorHandler struct {
	authorService service.ServiceInterface
}

func NewAuthorHandler(authorService service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// List GET /api/v1/authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.authorService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, authors)
}

// GetBySlug GET /api/v1/authors/:slug
func (h *AuthorHandler) GetBySlug(c *gin.Context) {
	resp, err := h.authorService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// GetByID GET /api/v1/authors/id/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c.Param("id"))
	if err != nil {
		response.NotFound(c, "author not found")
		return
	}

	resp, err := h.authorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// Promote POST /api/v1/admin/authors
func (h *AuthorHandler) Promote(c *gin.Context) {
	var req model.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}

	resp, warnings, err := h.authorService.Promote(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	response.SuccessWithWarnings(c, status, resp, warnings)
}

// Update PATCH /api/v1/admin/authors  body {id, updates}
func (h *AuthorHandler) Update(c *gin.Context) {
	var req model.AdminPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}

	id, err := utils.ParseUUIDParam(req.ID)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	author, err := h.authorService.Update(c.Request.Context(), session.FromContext(c.Request.Context()), id, req.Updates)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, author)
}

// Delete DELETE /api/v1/admin/authors?id=
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c.Query("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.authorService.Delete(c.Request.Context(), session.FromContext(c.Request.Context()), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
