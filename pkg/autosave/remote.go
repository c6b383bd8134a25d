package autosave

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const draftsPath = "/api/v1/content/drafts"

// HTTPRemote syncs drafts through the content API.
type HTTPRemote struct {
	client *resty.Client
}

// NewHTTPRemote targets baseURL (scheme and host) with a bearer token.
func NewHTTPRemote(baseURL, token string, timeout time.Duration) *HTTPRemote {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPRemote{client: client}
}

type draftBody struct {
	ID       string `json:"id"`
	Revision int64  `json:"revision"`
}

type draftEnvelope struct {
	OK    bool `json:"ok"`
	Value struct {
		Draft         draftBody `json:"draft"`
		StaleRevision bool      `json:"staleRevision"`
	} `json:"value"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type saveBody struct {
	DraftID      string `json:"draftId,omitempty"`
	BlogID       string `json:"blogId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	BaseRevision *int64 `json:"baseRevision,omitempty"`
}

// SaveDraft patches a known draft, or upserts the draft linked to the
// payload's blog.
func (r *HTTPRemote) SaveDraft(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	body := saveBody{
		Title:       req.Payload.Title,
		Description: req.Payload.Description,
		Image:       req.Payload.Image,
		Category:    req.Payload.Category,
	}

	var out draftEnvelope
	call := r.client.R().SetContext(ctx).SetResult(&out).SetError(&out)

	var (
		resp *resty.Response
		err  error
	)
	if req.DraftID != "" {
		body.DraftID = req.DraftID
		resp, err = call.SetBody(body).Patch(draftsPath)
	} else {
		body.BlogID = req.Payload.BlogID
		if req.BaseRevision > 0 {
			rev := req.BaseRevision
			body.BaseRevision = &rev
		}
		resp, err = call.SetBody(body).Post(draftsPath)
	}
	if err != nil {
		return nil, fmt.Errorf("sync draft: %w", err)
	}
	if resp.IsError() || !out.OK {
		return nil, &RemoteError{Status: resp.StatusCode(), Kind: out.Kind, Message: out.Message}
	}

	return &SyncResult{
		DraftID:  out.Value.Draft.ID,
		Revision: out.Value.Draft.Revision,
		Stale:    out.Value.StaleRevision,
	}, nil
}

type RemoteError struct {
	Status  int
	Kind    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("draft sync failed: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("draft sync failed (%d %s): %s", e.Status, e.Kind, e.Message)
}
