package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/audit/model"
	"infinite-ideas-hub/internal/domains/audit/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/utils"
)

type AuditHandler struct {
	auditService service.ServiceInterface
}

func NewAuditHandler(auditService service.ServiceInterface) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List GET /api/v1/admin/audit-logs?action=&page=&limit=
func (h *AuditHandler) List(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), 50, 200)

	entries, total, err := h.auditService.List(c.Request.Context(), model.ListRequest{
		Action: c.Query("action"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{Page: page, Limit: limit, Total: total})
}
