package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore implements Store with in-process maps. Used by tests and by
// deployments that do not need persistence across restarts.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Record),
	}
}

// QueryByOwner reads all records in a collection scoped to a user.
func (s *MemoryStore) QueryByOwner(ctx context.Context, collection, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []Record
	for _, r := range s.collections[collection] {
		if r.UserID == userID {
			records = append(records, cloneRecord(r))
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Get retrieves a single record by collection and id.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneRecord(r)
	return &c, nil
}

// BatchWrite applies all mutations under one lock. Operations are validated
// up front so a malformed batch leaves the store untouched.
func (s *MemoryStore) BatchWrite(ctx context.Context, ops []WriteOp) error {
	for _, op := range ops {
		if op.Kind != WriteSet && op.Kind != WriteDelete {
			return fmt.Errorf("unknown write kind %q", op.Kind)
		}
		if op.Collection == "" || op.ID == "" {
			return fmt.Errorf("write op missing collection or id")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, op := range ops {
		switch op.Kind {
		case WriteSet:
			coll, ok := s.collections[op.Collection]
			if !ok {
				coll = make(map[string]Record)
				s.collections[op.Collection] = coll
			}
			coll[op.ID] = Record{
				ID:     op.ID,
				UserID: op.UserID,
				Data:   append([]byte(nil), op.Data...),
			}
		case WriteDelete:
			delete(s.collections[op.Collection], op.ID)
		}
	}
	return nil
}

// Ping reports whether the store is reachable. Always nil for memory.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases the store. No-op for memory.
func (s *MemoryStore) Close() error {
	return nil
}

func cloneRecord(r Record) Record {
	r.Data = append([]byte(nil), r.Data...)
	return r
}
