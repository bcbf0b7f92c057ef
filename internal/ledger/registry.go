package ledger

import (
	"log/slog"
	"sync"
)

// Registry hands out at most one Store per day partition, so every writer
// in the process shares the same serialized view. Opening the same day from
// two Stores would let their in-memory copies diverge and clobber each
// other's writes.
type Registry struct {
	root   string
	logger *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates a registry rooted at the partition directory root.
func NewRegistry(root string, logger *slog.Logger) *Registry {
	return &Registry{
		root:   root,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// Root returns the partition root directory.
func (r *Registry) Root() string { return r.root }

// Get returns the Store for day, opening the partition on first access.
func (r *Registry) Get(day string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[day]; ok {
		return store, nil
	}
	store, err := Open(r.root, day, r.logger)
	if err != nil {
		return nil, err
	}
	r.stores[day] = store
	return store, nil
}
