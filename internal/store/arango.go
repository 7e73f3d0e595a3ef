package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"

	"github.com/volunteerhub/backend/database"
)

// ArangoDB error numbers
const (
	errNumDocumentNotFound = 1202
	errNumUniqueConstraint = 1210
)

// ArangoStore implements Store on top of an ArangoDB database
type ArangoStore struct {
	db arangodb.Database
}

// NewArangoStore wraps an initialized database connection
func NewArangoStore(conn database.DBConnection) *ArangoStore {
	return &ArangoStore{db: conn.Database}
}

func translateArangoErr(err error) error {
	if err == nil {
		return nil
	}
	var aerr shared.ArangoError
	if errors.As(err, &aerr) {
		switch aerr.ErrorNum {
		case errNumDocumentNotFound:
			return ErrNotFound
		case errNumUniqueConstraint:
			return ErrConflict
		}
	}
	return err
}

// readOne decodes the single next cursor document into out
func readOne(ctx context.Context, cursor arangodb.Cursor, out interface{}) error {
	if !cursor.HasMore() {
		return ErrNotFound
	}
	if out == nil {
		return nil
	}
	_, err := cursor.ReadDocument(ctx, out)
	return err
}

// readAll drains the cursor into out, which must be a pointer to a slice.
// Documents pass through JSON so any struct type with json tags works.
func readAll(ctx context.Context, cursor arangodb.Cursor, out interface{}) error {
	docs := []json.RawMessage{}
	for cursor.HasMore() {
		var raw json.RawMessage
		if _, err := cursor.ReadDocument(ctx, &raw); err != nil {
			return err
		}
		docs = append(docs, raw)
	}
	buf, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, out)
}

func (s *ArangoStore) query(ctx context.Context, query string, bindVars map[string]interface{}) (arangodb.Cursor, error) {
	cursor, err := s.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, translateArangoErr(err)
	}
	return cursor, nil
}

// GetByKey reads a document by its key
func (s *ArangoStore) GetByKey(ctx context.Context, collection, key string, out interface{}) error {
	query := `
		FOR d IN @@collection
			FILTER d._key == @key
			LIMIT 1
			RETURN d
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
		"key":         key,
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	return readOne(ctx, cursor, out)
}

// GetByField reads the first document whose field equals value
func (s *ArangoStore) GetByField(ctx context.Context, collection, field string, value interface{}, out interface{}) error {
	query := `
		FOR d IN @@collection
			FILTER d.@field == @value
			LIMIT 1
			RETURN d
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
		"field":       field,
		"value":       value,
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	return readOne(ctx, cursor, out)
}

// ListAll reads every document in the collection
func (s *ArangoStore) ListAll(ctx context.Context, collection string, out interface{}) error {
	query := `
		FOR d IN @@collection
			RETURN d
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	return readAll(ctx, cursor, out)
}

// ListWhere reads every document whose field equals value
func (s *ArangoStore) ListWhere(ctx context.Context, collection, field string, value interface{}, out interface{}) error {
	query := `
		FOR d IN @@collection
			FILTER d.@field == @value
			RETURN d
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
		"field":       field,
		"value":       value,
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	return readAll(ctx, cursor, out)
}

// Create inserts a document, assigning the key and timestamps server-side
// so the write stays a single atomic operation. A unique-index rejection
// (the slug index on organizations) surfaces as ErrConflict.
func (s *ArangoStore) Create(ctx context.Context, collection string, doc interface{}, out interface{}) error {
	query := `
		INSERT MERGE(@doc, { created_at: @now, updated_at: @now }) INTO @@collection
		RETURN NEW
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
		"doc":         doc,
		"now":         time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	return readOne(ctx, cursor, out)
}

// Update merges a partial patch into an existing document and refreshes
// updated_at. Arango's UPDATE merges attributes natively, which gives the
// patch its read-free single-write semantics.
func (s *ArangoStore) Update(ctx context.Context, collection, key string, patch map[string]interface{}, out interface{}) error {
	query := `
		UPDATE @key WITH MERGE(@patch, { updated_at: @now }) IN @@collection
		RETURN NEW
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
		"key":         key,
		"patch":       patch,
		"now":         time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	return readOne(ctx, cursor, out)
}

// Delete removes a document by key
func (s *ArangoStore) Delete(ctx context.Context, collection, key string) error {
	query := `
		REMOVE @key IN @@collection
	`
	cursor, err := s.query(ctx, query, map[string]interface{}{
		"@collection": collection,
		"key":         key,
	})
	if err != nil {
		return err
	}
	return cursor.Close()
}

// Count returns the number of documents matching every equality filter
func (s *ArangoStore) Count(ctx context.Context, collection string, filters map[string]interface{}) (int, error) {
	bindVars := map[string]interface{}{
		"@collection": collection,
	}

	// Deterministic clause order keeps query plans cacheable
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	query := `FOR d IN @@collection`
	for i, field := range fields {
		query += fmt.Sprintf("\n\tFILTER d.@field%d == @value%d", i, i)
		bindVars[fmt.Sprintf("field%d", i)] = field
		bindVars[fmt.Sprintf("value%d", i)] = filters[field]
	}
	query += "\n\tCOLLECT WITH COUNT INTO total\n\tRETURN total"

	cursor, err := s.query(ctx, query, bindVars)
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	var total int
	if err := readOne(ctx, cursor, &total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ Store = (*ArangoStore)(nil)
