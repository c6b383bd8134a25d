package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/subscriber/model"
	"infinite-ideas-hub/internal/domains/subscriber/service"
	"infinite-ideas-hub/internal/shared/response"
)

type SubscriberHandler struct {
	subscriberService service.ServiceInterface
}

func NewSubscriberHandler(subscriberService service.ServiceInterface) *SubscriberHandler {
	return &SubscriberHandler{subscriberService: subscriberService}
}

// Subscribe POST /api/v1/newsletter/subscribe
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	res, warnings, err := h.subscriberService.Subscribe(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusOK, res, warnings)
}

// Confirm GET /api/v1/newsletter/confirm?token=
// Browsers land here from the email, so success is a redirect.
func (h *SubscriberHandler) Confirm(c *gin.Context) {
	target, err := h.subscriberService.Confirm(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Check GET /api/v1/newsletter/check?email=
func (h *SubscriberHandler) Check(c *gin.Context) {
	exists, err := h.subscriberService.Check(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.CheckResponse{Exists: exists})
}
