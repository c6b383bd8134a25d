package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/publish/model"
	"infinite-ideas-hub/internal/domains/publish/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

type PublishHandler struct {
	publishService service.ServiceInterface
}

func NewPublishHandler(publishService service.ServiceInterface) *PublishHandler {
	return &PublishHandler{publishService: publishService}
}

// Publish POST /api/v1/content/publish
func (h *PublishHandler) Publish(c *gin.Context) {
	var req model.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, warnings, err := h.publishService.Publish(c.Request.Context(), session.FromContext(c.Request.Context()), req)
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

// Unpublish POST /api/v1/content/blog/unpublish?id=
func (h *PublishHandler) Unpublish(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c.Query("id"))
	if err != nil {
		response.BadRequest(c, "invalid blog id")
		return
	}

	blog, err := h.publishService.Unpublish(c.Request.Context(), session.FromContext(c.Request.Context()), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// AdminAction PATCH /api/v1/admin/posts
func (h *PublishHandler) AdminAction(c *gin.Context) {
	var req model.AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.publishService.AdminAction(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}
