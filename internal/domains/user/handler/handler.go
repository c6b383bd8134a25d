package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/user/model"
	"infinite-ideas-hub/internal/domains/user/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Refresh POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.userService.Refresh(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), session.FromContext(c.Request.Context()))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ListUsers GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), 50, 200)

	resp, err := h.userService.ListUsers(c.Request.Context(), model.ListUsersRequest{Page: page, Limit: limit})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Users, &response.Meta{Page: page, Limit: limit, Total: resp.Total})
}

// SetRole PATCH /api/v1/admin/users/:id/role
func (h *UserHandler) SetRole(c *gin.Context) {
	userID, err := utils.ParseUUIDParam(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, warnings, err := h.userService.SetRole(c.Request.Context(), session.FromContext(c.Request.Context()), userID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithWarnings(c, http.StatusOK, user, warnings)
}
