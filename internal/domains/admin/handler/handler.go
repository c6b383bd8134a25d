package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/admin/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
)

type AdminHandler struct {
	statsService service.ServiceInterface
}

func NewAdminHandler(statsService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{statsService: statsService}
}

// Stats GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context(), session.FromContext(c.Request.Context()))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
