package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infinite-ideas-hub/internal/domains/draft/model"
	"infinite-ideas-hub/internal/domains/draft/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

type DraftHandler struct {
	draftService service.ServiceInterface
}

func NewDraftHandler(draftService service.ServiceInterface) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Save POST /api/v1/content/drafts
func (h *DraftHandler) Save(c *gin.Context) {
	var req model.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.draftService.SaveDraft(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, resp)
}

// Update PATCH /api/v1/content/drafts
func (h *DraftHandler) Update(c *gin.Context) {
	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	draft, err := h.draftService.UpdateDraft(c.Request.Context(), session.FromContext(c.Request.Context()), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// Get GET /api/v1/content/drafts?draftId= | ?blogId= | (list)
func (h *DraftHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	identity := session.FromContext(ctx)

	switch {
	case c.Query("draftId") != "":
		id, err := utils.ParseUUIDParam(c.Query("draftId"))
		if err != nil {
			response.BadRequest(c, "invalid draftId")
			return
		}
		draft, err := h.draftService.GetDraft(ctx, identity, id)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"draft": draft})

	case c.Query("blogId") != "":
		blogID, err := utils.ParseUUIDParam(c.Query("blogId"))
		if err != nil {
			response.BadRequest(c, "invalid blogId")
			return
		}
		draft, err := h.draftService.GetDraftByBlog(ctx, identity, blogID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"draft": draft})

	default:
		drafts, err := h.draftService.ListDrafts(ctx, identity)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"drafts": drafts})
	}
}

// Delete DELETE /api/v1/content/drafts?draftId= | ?blogId= | ?all=true
func (h *DraftHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	identity := session.FromContext(ctx)

	var (
		n   int64
		err error
	)
	switch {
	case c.Query("draftId") != "":
		id, parseErr := utils.ParseUUIDParam(c.Query("draftId"))
		if parseErr != nil {
			response.BadRequest(c, "invalid draftId")
			return
		}
		n, err = h.draftService.DeleteDraft(ctx, identity, id)
	case c.Query("blogId") != "":
		blogID, parseErr := utils.ParseUUIDParam(c.Query("blogId"))
		if parseErr != nil {
			response.BadRequest(c, "invalid blogId")
			return
		}
		n, err = h.draftService.DeleteDraftByBlog(ctx, identity, blogID)
	case c.Query("all") == "true":
		n, err = h.draftService.DeleteAllDrafts(ctx, identity)
	default:
		response.BadRequest(c, "draftId, blogId or all=true is required")
		return
	}

	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.DeleteResponse{DeletedCount: n})
}
