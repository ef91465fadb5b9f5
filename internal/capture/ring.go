package capture

import (
	"encoding/json"
	"sync"
	"time"
)

// Entry is one captured webhook delivery, kept for operational inspection
type Entry struct {
	ReceivedAt time.Time       `json:"received_at"`
	Event      string          `json:"event"`
	Instance   string          `json:"instance"`
	Dropped    bool            `json:"dropped"`
	Reason     string          `json:"reason,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Ring is a bounded, overwrite-oldest buffer of webhook captures.
// Appends and snapshots are safe under concurrent use; a snapshot never
// observes a half-written entry.
type Ring struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	filled  bool
}

// NewRing creates a ring with the given capacity (minimum 1)
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity)}
}

// Append records an entry, overwriting the oldest when full.
// The payload is copied so callers may reuse their buffer.
func (r *Ring) Append(e Entry) {
	if e.Payload != nil {
		e.Payload = append(json.RawMessage(nil), e.Payload...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = e
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.filled = true
	}
}

// Snapshot returns the captured entries, oldest first
func (r *Ring) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.filled {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// Len returns the number of captured entries
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.filled {
		return len(r.entries)
	}
	return r.next
}
