package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/domains/media/service"
	"infinite-ideas-hub/internal/shared/response"
	"infinite-ideas-hub/internal/shared/session"
)

// maxUploadBytes bounds the multipart read; the processor enforces its own limit.
const maxUploadBytes = 8 << 20

type UploadResponse struct {
	URL string `json:"url"`
}

type MediaHandler struct {
	mediaService service.ServiceInterface
}

func NewMediaHandler(mediaService service.ServiceInterface) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload POST /api/v1/media/upload (multipart field "file")
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required (multipart/form-data)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	if len(data) > maxUploadBytes {
		response.BadRequest(c, "file is too large")
		return
	}

	log.Debug().Str("file_name", file.Filename).Int64("file_size", file.Size).Msg("cover upload received")

	url, err := h.mediaService.UploadCover(c.Request.Context(), session.FromContext(c.Request.Context()), data)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, UploadResponse{URL: url})
}
