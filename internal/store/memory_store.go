package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore holds the document in process. Load and Save copy, so callers
// observe the same isolation they get from the file backend.
type MemoryStore struct {
	mu  sync.Mutex
	doc *Document
}

// NewMemoryStore starts empty; pass seeded=true to start with the seed alerts.
func NewMemoryStore(seeded bool) *MemoryStore {
	doc := &Document{}
	if seeded {
		doc = newDocument(time.Now())
	}
	doc.normalize()
	return &MemoryStore{doc: doc}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := doc.Clone()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
