package autosave

import (
	"context"
	"sync"
	"time"

	"infinite-ideas-hub/pkg/logger"
)

// Coordinator debounces edits for a single editing key. It is safe for
// concurrent use; all background work stops with Stop.
type Coordinator struct {
	key    string
	local  LocalStore
	remote Remote
	opts   Options
	now    func() time.Time

	mu         sync.Mutex
	version    uint64
	latest     Payload
	draftID    string
	revision   int64
	localTimer *time.Timer
	syncTimer  *time.Timer
	inFlight   bool
	queued     bool
	stopped    bool
	status     Status
	// bumped by MarkSaved; responses for an older lineage are dropped
	epoch uint64

	// serializes local writes so an older entry never lands after a newer one
	localMu      sync.Mutex
	localVersion uint64

	wg sync.WaitGroup
}

// New resumes the server lineage (draft id and revision) recorded in the
// local entry for key, if any.
func New(key string, local LocalStore, remote Remote, opts Options) *Coordinator {
	c := &Coordinator{
		key:    key,
		local:  local,
		remote: remote,
		opts:   opts.withDefaults(),
		now:    time.Now,
		status: Status{State: StateIdle},
	}

	if entry, err := local.Load(key); err == nil && entry != nil {
		c.draftID = entry.DraftID
		c.revision = entry.Revision
		c.version = entry.Version
		c.localVersion = entry.Version
		c.status.DraftID = entry.DraftID
		c.status.Revision = entry.Revision
	}
	return c
}

// Schedule records an edit and (re)arms both timers.
func (c *Coordinator) Schedule(p Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	c.version++
	c.latest = p
	c.status.State = StatePending
	if p.DraftID != "" && p.DraftID != c.draftID {
		c.adoptLocked(p.DraftID, 0)
	}

	if c.localTimer != nil {
		c.localTimer.Stop()
	}
	c.localTimer = time.AfterFunc(c.opts.LocalDelay, c.flushLocal)

	if c.syncTimer != nil {
		c.syncTimer.Stop()
	}
	c.syncTimer = time.AfterFunc(c.opts.LocalDelay+c.opts.SyncOffset, c.triggerSync)
}

// SetDraftID points later syncs at an existing server draft, for example
// one just created by an explicit save. An empty id detaches the editor.
func (c *Coordinator) SetDraftID(id string, revision int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adoptLocked(id, revision)
}

func (c *Coordinator) adoptLocked(id string, revision int64) {
	c.draftID = id
	c.revision = revision
	c.status.DraftID = id
	c.status.Revision = revision
	c.status.Stale = false
}

func (c *Coordinator) flushLocal() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	entry := c.entryLocked()
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	c.writeLocal(entry)
}

// writeLocal drops entries older than the last one written.
func (c *Coordinator) writeLocal(entry Entry) {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	if entry.Version < c.localVersion {
		return
	}
	if err := c.local.Save(c.key, entry); err != nil {
		logger.Warn("autosave local write failed", map[string]interface{}{"key": c.key, "error": err.Error()})
		return
	}
	c.localVersion = entry.Version
}

func (c *Coordinator) entryLocked() Entry {
	return Entry{
		Payload:  c.latest,
		Version:  c.version,
		DraftID:  c.draftID,
		Revision: c.revision,
		SavedAt:  c.now(),
	}
}

func (c *Coordinator) triggerSync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	// never-synced new content stays local only
	if c.latest.BlogID == "" && c.draftID == "" {
		if c.status.State == StatePending {
			c.status.State = StateIdle
		}
		return
	}

	if c.inFlight {
		c.queued = true
		return
	}
	c.inFlight = true
	c.wg.Add(1)
	go c.runSync()
}

// runSync sends the latest payload, then keeps sending while edits were
// queued behind the in-flight request.
func (c *Coordinator) runSync() {
	defer c.wg.Done()

	for {
		c.mu.Lock()
		req := SyncRequest{Payload: c.latest, DraftID: c.draftID, BaseRevision: c.revision}
		sentVersion, sentEpoch := c.version, c.epoch
		c.status.State = StateSaving
		c.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), c.opts.RequestTimeout)
		res, err := c.remote.SaveDraft(ctx, req)
		cancel()

		c.mu.Lock()
		var persist *Entry
		discarded := c.epoch != sentEpoch
		switch {
		case discarded:
			if c.status.State == StateSaving {
				c.status.State = StateIdle
			}
		case err != nil:
			c.status.State = StateError
			c.status.Err = err
		default:
			c.draftID = res.DraftID
			c.revision = res.Revision
			c.status = Status{
				State:    StateSaved,
				DraftID:  res.DraftID,
				Revision: res.Revision,
				Stale:    res.Stale,
			}
			if c.version != sentVersion {
				c.status.State = StatePending
			}
			e := c.entryLocked()
			persist = &e
		}

		again := c.queued && !c.stopped
		c.queued = false
		if !again {
			c.inFlight = false
		}
		c.mu.Unlock()

		if err != nil && !discarded {
			logger.Warn("autosave sync failed", map[string]interface{}{"key": c.key, "error": err.Error()})
		}
		if persist != nil {
			c.writeLocal(*persist)
		}
		if !again {
			return
		}
	}
}

// Restore returns the cached entry when it holds meaningful content.
// The cache itself is left in place.
func (c *Coordinator) Restore() (*Entry, bool) {
	entry, err := c.local.Load(c.key)
	if err != nil || entry == nil || !entry.Payload.HasContent() {
		return nil, false
	}
	return entry, true
}

// MarkSaved clears the local cache after an explicit save or publish.
// Pending syncs are cancelled and the server lineage is forgotten, since a
// publish deletes the draft; call SetDraftID to keep editing a saved draft.
func (c *Coordinator) MarkSaved() error {
	c.mu.Lock()
	if c.localTimer != nil {
		c.localTimer.Stop()
	}
	if c.syncTimer != nil {
		c.syncTimer.Stop()
	}
	c.queued = false
	c.epoch++
	c.draftID = ""
	c.revision = 0
	c.status = Status{State: StateIdle}
	saved := c.version
	c.mu.Unlock()

	c.localMu.Lock()
	defer c.localMu.Unlock()
	// entries for content that was just saved must not come back
	c.localVersion = saved + 1
	return c.local.Delete(c.key)
}

func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Stop cancels pending timers and waits for an in-flight sync. A request
// already sent is allowed to finish; queued edits are not sent.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	if c.localTimer != nil {
		c.localTimer.Stop()
	}
	if c.syncTimer != nil {
		c.syncTimer.Stop()
	}
	c.mu.Unlock()

	c.wg.Wait()
}
