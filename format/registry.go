package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ReaderRegistry maps format identifiers to readers. Lookup is
// case-insensitive and a leading dot is stripped, so "TTL", "ttl" and
// ".ttl" all resolve to the same entry. Registries are safe for
// concurrent use.
type ReaderRegistry struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

// NewReaderRegistry returns an empty reader registry.
func NewReaderRegistry() *ReaderRegistry {
	return &ReaderRegistry{readers: make(map[string]Reader)}
}

// Register adds r under every identifier it reports. Registering an
// identifier twice replaces the earlier entry.
func (rr *ReaderRegistry) Register(r Reader) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	for _, id := range r.Identifiers() {
		rr.readers[normalizeID(id)] = r
	}
}

// For returns the reader registered for the identifier, or an error
// wrapping ErrUnsupportedFormat.
func (rr *ReaderRegistry) For(id string) (Reader, error) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	r, ok := rr.readers[normalizeID(id)]
	if !ok {
		return nil, fmt.Errorf("no reader for %q: %w", id, ErrUnsupportedFormat)
	}
	return r, nil
}

// Formats lists the registered identifiers in sorted order.
func (rr *ReaderRegistry) Formats() []string {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	ids := make([]string, 0, len(rr.readers))
	for id := range rr.readers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WriterRegistry maps format identifiers to writers, with the same
// identifier normalization as ReaderRegistry.
type WriterRegistry struct {
	mu      sync.RWMutex
	writers map[string]Writer
}

// NewWriterRegistry returns an empty writer registry.
func NewWriterRegistry() *WriterRegistry {
	return &WriterRegistry{writers: make(map[string]Writer)}
}

// Register adds w under its primary identifier plus any aliases.
func (wr *WriterRegistry) Register(w Writer, aliases ...string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.writers[normalizeID(w.FormatID())] = w
	for _, a := range aliases {
		wr.writers[normalizeID(a)] = w
	}
}

// For returns the writer registered for the identifier, or an error
// wrapping ErrUnsupportedFormat.
func (wr *WriterRegistry) For(id string) (Writer, error) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	w, ok := wr.writers[normalizeID(id)]
	if !ok {
		return nil, fmt.Errorf("no writer for %q: %w", id, ErrUnsupportedFormat)
	}
	return w, nil
}

// Formats lists the registered identifiers in sorted order.
func (wr *WriterRegistry) Formats() []string {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	ids := make([]string, 0, len(wr.writers))
	for id := range wr.writers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "."))
}
