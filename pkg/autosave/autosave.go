// Package autosave keeps in-progress editor content safe: every edit is
// cached locally after a quiet period and, once the content is linked to
// a server blog or draft, synced to the drafts API shortly after.
package autosave

import (
	"context"
	"strings"
	"time"

	"infinite-ideas-hub/internal/shared/utils"
)

const (
	DefaultLocalDelay     = 1500 * time.Millisecond
	DefaultSyncOffset     = 200 * time.Millisecond
	DefaultRequestTimeout = 15 * time.Second
)

// Payload is the editable content of one blog or draft. DraftID names a
// server draft the editor already knows about, such as the one opened in
// the draft editor.
type Payload struct {
	BlogID      string `json:"blogId,omitempty"`
	DraftID     string `json:"draftId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// HasContent reports whether p is worth offering back to the user.
func (p Payload) HasContent() bool {
	return strings.TrimSpace(p.Title) != "" ||
		utils.PlainText(p.Description) != "" ||
		strings.TrimSpace(p.Image) != ""
}

// Entry is what the local store keeps per editing key.
type Entry struct {
	Payload  Payload   `json:"payload"`
	Version  uint64    `json:"version"`
	DraftID  string    `json:"draftId,omitempty"`
	Revision int64     `json:"revision,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// LocalStore persists entries on the editing device.
// Load returns (nil, nil) when nothing is stored under key.
type LocalStore interface {
	Save(key string, e Entry) error
	Load(key string) (*Entry, error)
	Delete(key string) error
}

// SyncRequest is one server write. DraftID, when set, addresses an
// existing server draft; otherwise BlogID selects the upsert target.
type SyncRequest struct {
	Payload      Payload
	DraftID      string
	BaseRevision int64
}

type SyncResult struct {
	DraftID  string
	Revision int64
	// Stale is set when the server saw a newer revision than BaseRevision.
	Stale bool
}

// Remote writes drafts to the server.
type Remote interface {
	SaveDraft(ctx context.Context, req SyncRequest) (*SyncResult, error)
}

type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSaving  State = "saving"
	StateSaved   State = "saved"
	StateError   State = "error"
)

type Status struct {
	State    State
	Err      error
	DraftID  string
	Revision int64
	Stale    bool
}

type Options struct {
	LocalDelay     time.Duration
	SyncOffset     time.Duration
	RequestTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.LocalDelay <= 0 {
		o.LocalDelay = DefaultLocalDelay
	}
	if o.SyncOffset <= 0 {
		o.SyncOffset = DefaultSyncOffset
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	return o
}
