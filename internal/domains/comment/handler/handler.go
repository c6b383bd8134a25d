package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/comment/model"
	"infinite-ideas-hub/internal/domains/comment/service"
	"infinite-ideas-hub/internal/shared/response"
)

type CommentHandler struct {
	commentService service.ServiceInterface
}

func NewCommentHandler(commentService service.ServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req model.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, model.CreateResponse{ID: comment.ID.String()})
}

// List GET /api/v1/comments?blogId=
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.commentService.ListByBlog(c.Request.Context(), c.Query("blogId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}
