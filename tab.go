package portal

import (
	"context"
	"sync"
	"time"
)

// PatchKind says how the browser applies a Patch.
type PatchKind int

const (
	// PatchElements morphs HTML into the elements with matching ids.
	PatchElements PatchKind = iota
	// PatchNavigate assigns window.location.hash.
	PatchNavigate
	// PatchRedirect sends the browser to another URL.
	PatchRedirect
	// PatchSignals merges a JSON object into the datastar signals.
	PatchSignals
)

// Patch is one update queued for a tab's stream.
type Patch struct {
	Kind    PatchKind
	Content string
	epoch   uint64
}

const patchQueueSize = 64

// Tab is one open browser tab. Every navigation starts a new epoch and cancels
// the previous one; patches from an old epoch are dropped.
type Tab struct {
	id      string
	sid     string
	patches chan Patch

	mu         sync.Mutex
	epoch      uint64
	cancel     context.CancelFunc
	hash       string
	state      map[uint64]any
	lastAccess time.Time
	streams    int
}

func newTab(id, sid string) *Tab {
	return &Tab{
		id:         id,
		sid:        sid,
		patches:    make(chan Patch, patchQueueSize),
		state:      make(map[uint64]any),
		lastAccess: time.Now(),
	}
}

func (t *Tab) ID() string { return t.id }

// SessionID is the browser session the tab belongs to.
func (t *Tab) SessionID() string { return t.sid }

// Hash is the location hash of the latest navigation.
func (t *Tab) Hash() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hash
}

// Patches is the tab's outgoing queue.
func (t *Tab) Patches() <-chan Patch {
	return t.patches
}

// Current reports whether p belongs to the latest epoch.
func (t *Tab) Current(p Patch) bool {
	return t.isCurrent(p.epoch)
}

func (t *Tab) isCurrent(epoch uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.epoch == epoch
}

// begin starts a navigation to hash, cancelling whatever navigation was running.
func (t *Tab) begin(parent context.Context, hash string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.epoch++
	t.cancel = cancel
	t.hash = hash
	t.lastAccess = time.Now()
	return ctx, t.epoch
}

// end releases the navigation context if it is still the latest one.
func (t *Tab) end(epoch uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch == epoch && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// snapshot returns the current epoch without starting a new one.
func (t *Tab) snapshot() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastAccess = time.Now()
	return t.epoch
}

// enqueue blocks until the stream takes p, ctx ends, or p goes stale.
func (t *Tab) enqueue(ctx context.Context, p Patch) bool {
	if !t.isCurrent(p.epoch) {
		return false
	}
	select {
	case t.patches <- p:
		return true
	case <-ctx.Done():
		return false
	}
}

func (t *Tab) streamOpened() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.streams++
	t.lastAccess = time.Now()
}

func (t *Tab) streamClosed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.streams--
	t.lastAccess = time.Now()
}

// idleSince reports whether the tab has no stream and was last used before cutoff.
func (t *Tab) idleSince(cutoff time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streams == 0 && t.lastAccess.Before(cutoff)
}

func (t *Tab) dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
