package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var fastOpts = Options{LocalDelay: 10 * time.Millisecond, SyncOffset: 5 * time.Millisecond}

type fakeRemote struct {
	mu          sync.Mutex
	calls       []SyncRequest
	inFlight    int
	maxInFlight int
	gate        chan struct{}
	err         error
}

func (f *fakeRemote) SaveDraft(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	gate, err, n := f.gate, f.err, len(f.calls)
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &SyncResult{DraftID: "draft-1", Revision: int64(n)}, nil
}

func (f *fakeRemote) snapshot() []SyncRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SyncRequest(nil), f.calls...)
}

func loadEntry(t *testing.T, s LocalStore, key string) *Entry {
	t.Helper()
	e, err := s.Load(key)
	require.NoError(t, err)
	return e
}

func TestCoordinator_NewContentStaysLocal(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore()
	remote := &fakeRemote{}
	c := New("new-post", store, remote, fastOpts)
	defer c.Stop()

	c.Schedule(Payload{Title: "Hello", Description: "<p>first words</p>"})

	require.Eventually(t, func() bool {
		e := loadEntry(t, store, "new-post")
		return e != nil && e.Payload.Title == "Hello"
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, remote.snapshot())
	assert.Equal(t, StateIdle, c.Status().State)
}

func TestCoordinator_DebouncesAndPersistsDraftID(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore()
	remote := &fakeRemote{}
	c := New("blog-42", store, remote, fastOpts)
	defer c.Stop()

	for i := 1; i <= 5; i++ {
		c.Schedule(Payload{BlogID: "blog-42", Title: fmt.Sprintf("v%d", i)})
	}

	require.Eventually(t, func() bool {
		e := loadEntry(t, store, "blog-42")
		return e != nil && e.DraftID == "draft-1"
	}, time.Second, 5*time.Millisecond)

	calls := remote.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "v5", calls[0].Payload.Title)
	assert.Equal(t, "blog-42", calls[0].Payload.BlogID)
	assert.Empty(t, calls[0].DraftID)

	st := c.Status()
	assert.Equal(t, StateSaved, st.State)
	assert.Equal(t, "draft-1", st.DraftID)
}

func TestCoordinator_SingleRequestInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	remote := &fakeRemote{gate: gate}
	c := New("blog-7", NewMemoryStore(), remote, fastOpts)
	defer c.Stop()

	c.Schedule(Payload{BlogID: "blog-7", Title: "a"})
	require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateSaving, c.Status().State)

	c.Schedule(Payload{BlogID: "blog-7", Title: "b"})
	c.Schedule(Payload{BlogID: "blog-7", Title: "c"})
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.queued
	}, time.Second, 5*time.Millisecond)

	close(gate)

	require.Eventually(t, func() bool { return c.Status().State == StateSaved }, time.Second, 5*time.Millisecond)
	calls := remote.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "c", calls[1].Payload.Title)
	assert.Equal(t, "draft-1", calls[1].DraftID)
	assert.Equal(t, int64(1), calls[1].BaseRevision)
	assert.Equal(t, 1, remote.maxInFlight)
}

func TestCoordinator_SyncFailureIsReported(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore()
	remote := &fakeRemote{err: errors.New("503")}
	c := New("blog-9", store, remote, fastOpts)
	defer c.Stop()

	c.Schedule(Payload{BlogID: "blog-9", Title: "keeps working"})
	require.Eventually(t, func() bool { return c.Status().State == StateError }, time.Second, 5*time.Millisecond)
	assert.EqualError(t, c.Status().Err, "503")

	e := loadEntry(t, store, "blog-9")
	require.NotNil(t, e)
	assert.Equal(t, "keeps working", e.Payload.Title)
}

func TestCoordinator_ResumesStoredLineage(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore()
	require.NoError(t, store.Save("standalone", Entry{
		Payload:  Payload{Title: "old"},
		Version:  4,
		DraftID:  "draft-9",
		Revision: 3,
	}))
	remote := &fakeRemote{}
	c := New("standalone", store, remote, fastOpts)
	defer c.Stop()

	c.Schedule(Payload{Title: "new"})
	require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	call := remote.snapshot()[0]
	assert.Equal(t, "draft-9", call.DraftID)
	assert.Equal(t, int64(3), call.BaseRevision)
}

func TestCoordinator_RestoreAndMarkSaved(t *testing.T) {
	store := NewMemoryStore()
	c := New("k", store, &fakeRemote{}, fastOpts)
	defer c.Stop()

	_, ok := c.Restore()
	assert.False(t, ok)

	require.NoError(t, store.Save("k", Entry{Payload: Payload{Description: "<p>&nbsp;</p>"}}))
	_, ok = c.Restore()
	assert.False(t, ok, "markup without text is not meaningful")

	require.NoError(t, store.Save("k", Entry{Payload: Payload{Image: "/uploads/a.jpg"}}))
	e, ok := c.Restore()
	require.True(t, ok)
	assert.Equal(t, "/uploads/a.jpg", e.Payload.Image)

	_, ok = c.Restore()
	assert.True(t, ok, "restoring leaves the cache in place")

	require.NoError(t, c.MarkSaved())
	_, ok = c.Restore()
	assert.False(t, ok)
}

func TestCoordinator_StopWaitsForInFlightSync(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	remote := &fakeRemote{gate: gate}
	c := New("blog-1", NewMemoryStore(), remote, fastOpts)

	c.Schedule(Payload{BlogID: "blog-1", Title: "x"})
	require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		c.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a sync was in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(gate)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	c.Schedule(Payload{BlogID: "blog-1", Title: "ignored"})
	time.Sleep(40 * time.Millisecond)
	assert.Len(t, remote.snapshot(), 1)
}

func TestCoordinator_SyncsKnownDraft(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("draft id on the payload", func(t *testing.T) {
		remote := &fakeRemote{}
		c := New("draft-editor", NewMemoryStore(), remote, fastOpts)
		defer c.Stop()

		c.Schedule(Payload{DraftID: "draft-77", Title: "standalone edit"})
		require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

		call := remote.snapshot()[0]
		assert.Equal(t, "draft-77", call.DraftID)
		assert.Equal(t, "standalone edit", call.Payload.Title)
	})

	t.Run("draft id set after an explicit save", func(t *testing.T) {
		remote := &fakeRemote{}
		c := New("new-post", NewMemoryStore(), remote, fastOpts)
		defer c.Stop()

		c.SetDraftID("draft-5", 2)
		c.Schedule(Payload{Title: "keeps going"})
		require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

		call := remote.snapshot()[0]
		assert.Equal(t, "draft-5", call.DraftID)
		assert.Equal(t, int64(2), call.BaseRevision)
	})
}

func TestCoordinator_MarkSavedForgetsLineage(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("pending sync is cancelled", func(t *testing.T) {
		remote := &fakeRemote{}
		c := New("b1", NewMemoryStore(), remote, fastOpts)
		defer c.Stop()

		c.Schedule(Payload{BlogID: "b1", Title: "about to publish"})
		require.NoError(t, c.MarkSaved())

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, remote.snapshot())
		assert.Equal(t, StateIdle, c.Status().State)
	})

	t.Run("later edits upsert by blog again", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save("b2", Entry{Payload: Payload{BlogID: "b2"}, DraftID: "draft-9", Revision: 3}))
		remote := &fakeRemote{}
		c := New("b2", store, remote, fastOpts)
		defer c.Stop()

		require.NoError(t, c.MarkSaved())
		c.Schedule(Payload{BlogID: "b2", Title: "after publish"})
		require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

		call := remote.snapshot()[0]
		assert.Empty(t, call.DraftID)
		assert.Zero(t, call.BaseRevision)
	})

	t.Run("in-flight response is dropped", func(t *testing.T) {
		gate := make(chan struct{})
		store := NewMemoryStore()
		remote := &fakeRemote{gate: gate}
		c := New("b3", store, remote, fastOpts)
		defer c.Stop()

		c.Schedule(Payload{BlogID: "b3", Title: "racing"})
		require.Eventually(t, func() bool { return len(remote.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
		require.NoError(t, c.MarkSaved())
		close(gate)

		require.Eventually(t, func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			return !c.inFlight
		}, time.Second, 5*time.Millisecond)

		st := c.Status()
		assert.Empty(t, st.DraftID)
		assert.Equal(t, StateIdle, st.State)
		assert.Nil(t, loadEntry(t, store, "b3"))
	})
}
