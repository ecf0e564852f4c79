package log

import (
	"fmt"
	"io"
	"sync"
)

// Ring is an [io.Writer] that keeps the most recent writes in memory. It
// holds log records while the terminal belongs to the UI, so they can be
// flushed to stderr once the UI exits.
type Ring struct {
	entries [][]byte
	next    int
	dropped int
	mu      sync.Mutex
}

// NewRing returns a ring holding up to capacity entries. A non-positive
// capacity holds 100.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 100
	}

	return &Ring{entries: make([][]byte, 0, capacity)}
}

// Write stores a copy of p as one entry, evicting the oldest entry when the
// ring is full.
func (r *Ring) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	entry := append([]byte(nil), p...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) < cap(r.entries) {
		r.entries = append(r.entries, entry)
		return len(p), nil
	}

	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	r.dropped++

	return len(p), nil
}

// Len returns the number of entries held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Dropped returns the number of entries evicted so far.
func (r *Ring) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dropped
}

// WriteTo writes the held entries to w, oldest first.
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	r.mu.Lock()
	ordered := make([][]byte, 0, len(r.entries))
	ordered = append(ordered, r.entries[r.next:]...)
	ordered = append(ordered, r.entries[:r.next]...)
	r.mu.Unlock()

	var total int64

	for _, entry := range ordered {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write log entry: %w", err)
		}
	}

	return total, nil
}
