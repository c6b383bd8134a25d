package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/category/model"
	"infinite-ideas-hub/internal/domains/category/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
)

type CategoryHandler struct {
	categoryService service.ServiceInterface
}

func NewCategoryHandler(categoryService service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// GetBySlug GET /api/v1/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	resp, err := h.categoryService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Create POST /api/v1/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}
