package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name      string
	Status    string
	Skills    []string
	CreatedAt time.Time
}

var recordDesc = Descriptor[record]{
	Fields: map[string]func(record) string{
		"name":   func(r record) string { return r.Name },
		"status": func(r record) string { return r.Status },
	},
	Searchable: []string{"name"},
	Tags:       func(r record) []string { return r.Skills },
	CreatedAt:  func(r record) time.Time { return r.CreatedAt },
}

func at(offset int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Hour)
}

func TestRunEqualsFilter(t *testing.T) {
	records := []record{
		{Name: "a", Status: "active", CreatedAt: at(1)},
		{Name: "b", Status: "inactive", CreatedAt: at(2)},
		{Name: "c", Status: "active", CreatedAt: at(3)},
	}

	result := Run(records, Options{Equals: map[string]string{"status": "active"}}, recordDesc)

	require.Len(t, result.Page, 2)
	assert.Equal(t, 2, result.Total)
	for _, r := range result.Page {
		assert.Equal(t, "active", r.Status)
	}
}

func TestRunSearchIsCaseInsensitiveSubstring(t *testing.T) {
	records := []record{
		{Name: "Helping Hands", CreatedAt: at(1)},
		{Name: "food bank", CreatedAt: at(2)},
		{Name: "Animal Shelter", CreatedAt: at(3)},
	}

	result := Run(records, Options{Search: "HAND"}, recordDesc)

	require.Len(t, result.Page, 1)
	assert.Equal(t, "Helping Hands", result.Page[0].Name)
}

func TestRunTagsRequireEveryTag(t *testing.T) {
	records := []record{
		{Name: "a", Skills: []string{"driving", "cooking"}, CreatedAt: at(1)},
		{Name: "b", Skills: []string{"driving"}, CreatedAt: at(2)},
		{Name: "c", Skills: []string{"cooking", "driving", "first-aid"}, CreatedAt: at(3)},
	}

	result := Run(records, Options{Tags: []string{"driving", "cooking"}}, recordDesc)

	require.Equal(t, 2, result.Total)
	assert.Equal(t, "c", result.Page[0].Name)
	assert.Equal(t, "a", result.Page[1].Name)
}

func TestRunFiltersCombineWithAnd(t *testing.T) {
	records := []record{
		{Name: "match", Status: "active", Skills: []string{"driving"}, CreatedAt: at(1)},
		{Name: "match too", Status: "inactive", Skills: []string{"driving"}, CreatedAt: at(2)},
		{Name: "other", Status: "active", Skills: []string{"driving"}, CreatedAt: at(3)},
	}

	result := Run(records, Options{
		Equals: map[string]string{"status": "active"},
		Search: "match",
		Tags:   []string{"driving"},
	}, recordDesc)

	require.Len(t, result.Page, 1)
	assert.Equal(t, "match", result.Page[0].Name)
}

func TestRunDefaultSortIsMostRecentFirst(t *testing.T) {
	records := []record{
		{Name: "oldest", CreatedAt: at(1)},
		{Name: "newest", CreatedAt: at(3)},
		{Name: "middle", CreatedAt: at(2)},
	}

	result := Run(records, Options{}, recordDesc)

	require.Len(t, result.Page, 3)
	assert.Equal(t, "newest", result.Page[0].Name)
	assert.Equal(t, "middle", result.Page[1].Name)
	assert.Equal(t, "oldest", result.Page[2].Name)
}

func TestRunSortByFieldIsCaseInsensitive(t *testing.T) {
	records := []record{
		{Name: "banana", CreatedAt: at(1)},
		{Name: "Apple", CreatedAt: at(2)},
		{Name: "cherry", CreatedAt: at(3)},
	}

	asc := Run(records, Options{Sort: &Sort{Field: "name"}}, recordDesc)
	require.Len(t, asc.Page, 3)
	assert.Equal(t, "Apple", asc.Page[0].Name)
	assert.Equal(t, "banana", asc.Page[1].Name)
	assert.Equal(t, "cherry", asc.Page[2].Name)

	desc := Run(records, Options{Sort: &Sort{Field: "name", Descending: true}}, recordDesc)
	assert.Equal(t, "cherry", desc.Page[0].Name)
}

func TestRunUnknownSortFieldFallsBackToDefault(t *testing.T) {
	records := []record{
		{Name: "oldest", CreatedAt: at(1)},
		{Name: "newest", CreatedAt: at(2)},
	}

	result := Run(records, Options{Sort: &Sort{Field: "favorite_color"}}, recordDesc)

	require.Len(t, result.Page, 2)
	assert.Equal(t, "newest", result.Page[0].Name)
}

func TestRunPagination(t *testing.T) {
	records := make([]record, 25)
	for i := range records {
		records[i] = record{Name: fmt.Sprintf("r%02d", i), CreatedAt: at(-i)}
	}

	page1 := Run(records, Options{Pagination: &Pagination{Page: 1, Limit: 10}}, recordDesc)
	assert.Len(t, page1.Page, 10)
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, "r00", page1.Page[0].Name)

	page3 := Run(records, Options{Pagination: &Pagination{Page: 3, Limit: 10}}, recordDesc)
	assert.Len(t, page3.Page, 5)
	assert.Equal(t, 25, page3.Total)
	assert.Equal(t, "r20", page3.Page[0].Name)

	beyond := Run(records, Options{Pagination: &Pagination{Page: 4, Limit: 10}}, recordDesc)
	assert.Empty(t, beyond.Page)
	assert.Equal(t, 25, beyond.Total)
}

func TestRunPaginationDefaults(t *testing.T) {
	records := make([]record, 15)
	for i := range records {
		records[i] = record{Name: fmt.Sprintf("r%02d", i), CreatedAt: at(-i)}
	}

	// Limit 0 falls back to DefaultLimit, page 0 to page 1
	result := Run(records, Options{Pagination: &Pagination{}}, recordDesc)
	assert.Len(t, result.Page, DefaultLimit)
	assert.Equal(t, "r00", result.Page[0].Name)
}

func TestRunWithoutPaginationReturnsEverything(t *testing.T) {
	records := make([]record, 30)
	for i := range records {
		records[i] = record{Name: fmt.Sprintf("r%02d", i), CreatedAt: at(-i)}
	}

	result := Run(records, Options{}, recordDesc)
	assert.Len(t, result.Page, 30)
}
