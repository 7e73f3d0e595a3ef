package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "helping-hands", NormalizeSlug("  Helping-Hands "))
	assert.Equal(t, "org-1", NormalizeSlug("ORG-1"))
	assert.Equal(t, "", NormalizeSlug("   "))
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "food-bank", "org-123", "123"}
	for _, slug := range valid {
		assert.True(t, IsValidSlug(slug), slug)
	}

	invalid := []string{"", "Food-Bank", "has space", "under_score", "dot.com", "émoji"}
	for _, slug := range invalid {
		assert.False(t, IsValidSlug(slug), slug)
	}
}
