// Package query implements the list pipeline: filter, sort, paginate. It
// operates on a materialized snapshot handed to it by the caller, performs
// no I/O, and is deterministic.
package query

import (
	"sort"
	"strings"
	"time"
)

// Sort names a field and a direction
type Sort struct {
	Field      string
	Descending bool
}

// Pagination selects one page of the filtered, sorted result
type Pagination struct {
	Page  int
	Limit int
}

// DefaultLimit applies when a caller paginates without a limit
const DefaultLimit = 10

// Options carries every predicate of one list call. Filters combine with
// logical AND.
type Options struct {
	// Equals matches named fields exactly (enum fields such as status)
	Equals map[string]string
	// Search matches case-insensitively as a substring across the
	// entity's searchable fields, OR among them
	Search string
	// Tags requires the record's tag set to contain every listed tag
	Tags []string

	Sort       *Sort
	Pagination *Pagination
}

// Descriptor tells the engine how to read named fields off a record type
type Descriptor[T any] struct {
	// Fields maps filter/sort field names to accessors. Absent values
	// read as the empty string.
	Fields map[string]func(T) string
	// Searchable lists the field names the search filter scans
	Searchable []string
	// Tags reads the record's tag set, or nil when the type has none
	Tags func(T) []string
	// CreatedAt feeds the default most-recent-first sort
	CreatedAt func(T) time.Time
}

func (d Descriptor[T]) field(record T, name string) string {
	get, ok := d.Fields[name]
	if !ok {
		return ""
	}
	return get(record)
}

// Result is one page plus the filtered-set size before pagination
type Result[T any] struct {
	Page  []T
	Total int
}

func (d Descriptor[T]) matches(record T, opts Options) bool {
	for name, want := range opts.Equals {
		if d.field(record, name) != want {
			return false
		}
	}

	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		found := false
		for _, name := range d.Searchable {
			if strings.Contains(strings.ToLower(d.field(record, name)), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(opts.Tags) > 0 {
		if d.Tags == nil {
			return false
		}
		have := d.Tags(record)
		for _, want := range opts.Tags {
			found := false
			for _, tag := range have {
				if tag == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	return true
}

// Run filters, sorts and paginates the snapshot. Total counts the filtered
// set before pagination so callers can compute page counts. Without an
// explicit sort, or when the sort names a field the descriptor does not
// know, records come back most recently created first.
func Run[T any](records []T, opts Options, desc Descriptor[T]) Result[T] {
	filtered := make([]T, 0, len(records))
	for _, record := range records {
		if desc.matches(record, opts) {
			filtered = append(filtered, record)
		}
	}

	sortRecords(filtered, opts.Sort, desc)

	total := len(filtered)
	page := filtered

	if opts.Pagination != nil {
		limit := opts.Pagination.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		pageNum := opts.Pagination.Page
		if pageNum < 1 {
			pageNum = 1
		}
		offset := (pageNum - 1) * limit

		if offset >= total {
			page = []T{}
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			page = filtered[offset:end]
		}
	}

	return Result[T]{Page: page, Total: total}
}

func sortRecords[T any](records []T, s *Sort, desc Descriptor[T]) {
	if s != nil {
		if _, known := desc.Fields[s.Field]; known {
			field, descending := s.Field, s.Descending
			sort.SliceStable(records, func(i, j int) bool {
				a := strings.ToLower(desc.field(records[i], field))
				b := strings.ToLower(desc.field(records[j], field))
				if descending {
					return a > b
				}
				return a < b
			})
			return
		}
	}

	// Default: most recent first
	sort.SliceStable(records, func(i, j int) bool {
		return desc.CreatedAt(records[i]).After(desc.CreatedAt(records[j]))
	})
}
