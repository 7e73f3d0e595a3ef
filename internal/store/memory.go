package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for tests and local development.
// Documents live as decoded JSON maps, mirroring what the document store
// holds, so the same struct types round-trip through both implementations.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
	uniques     map[string][]string // collection -> unique fields
	order       map[string][]string // collection -> keys in insert order
}

// NewMemoryStore creates an empty store with the same unique constraints
// the ArangoDB indexes enforce.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
		uniques: map[string][]string{
			CollectionOrganizations: {"slug"},
			CollectionUsers:         {"email"},
		},
		order: make(map[string][]string),
	}
}

// collection returns the named collection, creating it. Callers must hold
// the write lock.
func (s *MemoryStore) collection(name string) map[string]map[string]interface{} {
	col, ok := s.collections[name]
	if !ok {
		col = make(map[string]map[string]interface{})
		s.collections[name] = col
	}
	return col
}

// view returns the named collection for reading, without creating it.
// Safe under the read lock.
func (s *MemoryStore) view(name string) map[string]map[string]interface{} {
	return s.collections[name]
}

// toDoc round-trips v through JSON into a map
func toDoc(v interface{}) (map[string]interface{}, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeInto(v interface{}, out interface{}) error {
	if out == nil {
		return nil
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, out)
}

// sameValue compares a stored JSON value with a filter value regardless of
// the Go types they arrived as
func sameValue(a, b interface{}) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// GetByKey reads a document by its key
func (s *MemoryStore) GetByKey(_ context.Context, collection, key string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.view(collection)[key]
	if !ok {
		return ErrNotFound
	}
	return decodeInto(doc, out)
}

// GetByField reads the first document whose field equals value
func (s *MemoryStore) GetByField(_ context.Context, collection, field string, value interface{}, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.view(collection)
	for _, key := range s.order[collection] {
		doc, ok := col[key]
		if !ok {
			continue
		}
		if sameValue(doc[field], value) {
			return decodeInto(doc, out)
		}
	}
	return ErrNotFound
}

// ListAll reads every document in insert order
func (s *MemoryStore) ListAll(_ context.Context, collection string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.view(collection)
	docs := []map[string]interface{}{}
	for _, key := range s.order[collection] {
		if doc, ok := col[key]; ok {
			docs = append(docs, doc)
		}
	}
	return decodeInto(docs, out)
}

// ListWhere reads every document whose field equals value
func (s *MemoryStore) ListWhere(_ context.Context, collection, field string, value interface{}, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.view(collection)
	docs := []map[string]interface{}{}
	for _, key := range s.order[collection] {
		doc, ok := col[key]
		if !ok {
			continue
		}
		if sameValue(doc[field], value) {
			docs = append(docs, doc)
		}
	}
	return decodeInto(docs, out)
}

// Create inserts a document with a fresh key and timestamps
func (s *MemoryStore) Create(_ context.Context, collection string, docIn interface{}, out interface{}) error {
	doc, err := toDoc(docIn)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	for _, field := range s.uniques[collection] {
		want, ok := doc[field]
		if !ok || want == nil || want == "" {
			continue
		}
		for _, existing := range col {
			if sameValue(existing[field], want) {
				return ErrConflict
			}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	key := uuid.NewString()
	doc["_key"] = key
	doc["created_at"] = now
	doc["updated_at"] = now

	col[key] = doc
	s.order[collection] = append(s.order[collection], key)

	return decodeInto(doc, out)
}

// Update merges a patch into an existing document and refreshes updated_at
func (s *MemoryStore) Update(_ context.Context, collection, key string, patch map[string]interface{}, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	doc, ok := col[key]
	if !ok {
		return ErrNotFound
	}

	for _, field := range s.uniques[collection] {
		want, present := patch[field]
		if !present || want == nil || want == "" {
			continue
		}
		for otherKey, existing := range col {
			if otherKey != key && sameValue(existing[field], want) {
				return ErrConflict
			}
		}
	}

	normalized, err := toDoc(patch)
	if err != nil {
		return err
	}
	for field, value := range normalized {
		doc[field] = value
	}
	doc["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)

	return decodeInto(doc, out)
}

// Delete removes a document by key
func (s *MemoryStore) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	if _, ok := col[key]; !ok {
		return ErrNotFound
	}
	delete(col, key)

	keys := s.order[collection]
	for i, k := range keys {
		if k == key {
			s.order[collection] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of documents matching every equality filter
func (s *MemoryStore) Count(_ context.Context, collection string, filters map[string]interface{}) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, doc := range s.view(collection) {
		match := true
		for field, value := range filters {
			if !sameValue(doc[field], value) {
				match = false
				break
			}
		}
		if match {
			total++
		}
	}
	return total, nil
}

var _ Store = (*MemoryStore)(nil)
