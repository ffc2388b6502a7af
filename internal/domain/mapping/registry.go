// Package mapping holds the bidirectional table between index names and
// domain keys.
//
// Domain keys are compared in canonical form: at most one leading Separator
// is stripped, the rest is compared literally and case-sensitively. Keys
// coming from configuration may therefore be written as `App\Todo` or
// `\App\Todo` and still resolve to the same index.
package mapping

import (
	"strings"
	"sync"

	"github.com/kailas-cloud/hydrex/internal/domain"
)

// Separator is the namespace qualifier that may prefix a configured domain key.
const Separator = `\`

// Entry is a single index -> domain key pair.
type Entry struct {
	Index     string
	DomainKey string
}

// Registry maps index names to domain keys and back.
// Safe for concurrent use; writes are expected only during startup.
type Registry struct {
	mu      sync.RWMutex
	forward map[string]string
	order   []string // index names in first-registration order
}

// NewRegistry creates a registry populated with the given entries.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{forward: make(map[string]string, len(entries))}
	for _, e := range entries {
		r.Register(e.Index, e.DomainKey)
	}
	return r
}

// Canonical strips a single leading Separator from key.
func Canonical(key string) string {
	return strings.TrimPrefix(key, Separator)
}

// Register inserts or overwrites the domain key for index.
// An overwritten index keeps its original position for reverse lookups.
func (r *Registry) Register(index, domainKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.forward[index]; !ok {
		r.order = append(r.order, index)
	}
	r.forward[index] = Canonical(domainKey)
}

// ResolveDomainKey returns the domain key registered for index.
func (r *Registry) ResolveDomainKey(index string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.forward[index]
	if !ok {
		return "", &domain.UnmappedIndexError{Index: index}
	}
	return key, nil
}

// ResolveIndex returns the index registered for domainKey.
// When several indexes share a domain key the earliest registered one wins.
func (r *Registry) ResolveIndex(domainKey string) (string, error) {
	want := Canonical(domainKey)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, index := range r.order {
		if r.forward[index] == want {
			return index, nil
		}
	}
	return "", &domain.UnmappedClassError{DomainKey: domainKey}
}

// Entries returns a snapshot of all entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.order))
	for i, index := range r.order {
		out[i] = Entry{Index: index, DomainKey: r.forward[index]}
	}
	return out
}

// Len returns the number of mapped indexes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
