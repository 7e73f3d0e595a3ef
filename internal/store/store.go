// Package store defines the durable record store the services depend on,
// plus its ArangoDB and in-memory implementations. Collections hold JSON
// documents keyed by a store-assigned `_key`; the store owns id assignment
// and created_at/updated_at maintenance so every write is a single atomic
// document operation.
package store

import (
	"context"
	"errors"
)

// Collection names
const (
	CollectionOrganizations = "organizations"
	CollectionVolunteers    = "volunteers"
	CollectionEvents        = "events"
	CollectionDonations     = "donations"
	CollectionUsers         = "users"
)

// Collections lists every collection the service owns, in creation order
var Collections = []string{
	CollectionOrganizations,
	CollectionVolunteers,
	CollectionEvents,
	CollectionDonations,
	CollectionUsers,
}

// Sentinel errors for store facts. Services translate these into typed
// application errors; the store never imports apperrors.
var (
	ErrNotFound = errors.New("document not found")
	ErrConflict = errors.New("unique constraint violated")
)

// Store is the durable CRUD + query surface consumed by the service layer.
// Single-document reads decode into out; list reads decode into a pointer
// to a slice.
type Store interface {
	// GetByKey reads the document with the given key, or ErrNotFound.
	GetByKey(ctx context.Context, collection, key string, out interface{}) error

	// GetByField reads the first document whose field equals value, or
	// ErrNotFound.
	GetByField(ctx context.Context, collection, field string, value interface{}, out interface{}) error

	// ListAll reads every document in the collection into out.
	ListAll(ctx context.Context, collection string, out interface{}) error

	// ListWhere reads every document whose field equals value into out.
	ListWhere(ctx context.Context, collection, field string, value interface{}, out interface{}) error

	// Create inserts doc, assigning a fresh key and created_at/updated_at,
	// and decodes the stored document into out when out is non-nil.
	// Returns ErrConflict when a unique index rejects the write.
	Create(ctx context.Context, collection string, doc interface{}, out interface{}) error

	// Update merges patch into the document with the given key, refreshing
	// updated_at, and decodes the result into out when out is non-nil.
	Update(ctx context.Context, collection, key string, patch map[string]interface{}, out interface{}) error

	// Delete removes the document with the given key, or ErrNotFound.
	Delete(ctx context.Context, collection, key string) error

	// Count returns the number of documents matching every field filter.
	Count(ctx context.Context, collection string, filters map[string]interface{}) (int, error)
}
