// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// memoryStore is an in-process [DocumentStore]. It is the default backend
// for tests and for running the client without any external store.
type memoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemoryStore constructs an empty in-memory [DocumentStore].
func NewMemoryStore() DocumentStore {
	return &memoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (s *memoryStore) Put(_ context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		s.collections[collection] = coll
	}
	coll[id] = cloneFields(doc.Fields)

	return id, nil
}

func (s *memoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: cloneFields(fields)}, nil
}

func (s *memoryStore) List(_ context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[collection]
	docs := make([]Document, 0, len(coll))
	for id, fields := range coll {
		docs = append(docs, Document{ID: id, Fields: cloneFields(fields)})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		cmp := compareValues(docs[i].Fields[orderBy], docs[j].Fields[orderBy])
		if cmp == 0 {
			// Deterministic order for equal sort keys.
			cmp = compareValues(docs[i].ID, docs[j].ID)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return docs, nil
}

func (s *memoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collections[collection]
	if _, ok := coll[id]; !ok {
		return ErrNotFound
	}
	delete(coll, id)
	return nil
}

func (s *memoryStore) UpdateFields(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	for k, v := range fields {
		if v == nil {
			delete(stored, k)
			continue
		}
		stored[k] = cloneValue(v)
	}
	return nil
}
