package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerhub/backend/model"
)

func TestMemoryStoreCreateAssignsKeyAndTimestamps(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var created model.Organization
	err := st.Create(ctx, CollectionOrganizations, model.NewOrganization("Helping Hands", "helping-hands"), &created)
	require.NoError(t, err)

	assert.NotEmpty(t, created.Key)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	var fetched model.Organization
	require.NoError(t, st.GetByKey(ctx, CollectionOrganizations, created.Key, &fetched))
	assert.Equal(t, "helping-hands", fetched.Slug)
}

func TestMemoryStoreUniqueSlug(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("First", "shared-slug"), nil))

	err := st.Create(ctx, CollectionOrganizations, model.NewOrganization("Second", "shared-slug"), nil)
	assert.ErrorIs(t, err, ErrConflict)

	// Updating a different record onto the taken slug is also rejected
	var other model.Organization
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Other", "other-slug"), &other))
	err = st.Update(ctx, CollectionOrganizations, other.Key, map[string]interface{}{"slug": "shared-slug"}, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryStoreGetByField(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Food Bank", "food-bank"), nil))

	var found model.Organization
	require.NoError(t, st.GetByField(ctx, CollectionOrganizations, "slug", "food-bank", &found))
	assert.Equal(t, "Food Bank", found.Name)

	err := st.GetByField(ctx, CollectionOrganizations, "slug", "missing", &found)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListWhere(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var org model.Organization
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Org", "org"), &org))

	require.NoError(t, st.Create(ctx, CollectionVolunteers, model.NewVolunteer(org.Key, "Ada", "Lovelace", "ada@example.org"), nil))
	require.NoError(t, st.Create(ctx, CollectionVolunteers, model.NewVolunteer(org.Key, "Grace", "Hopper", "grace@example.org"), nil))
	require.NoError(t, st.Create(ctx, CollectionVolunteers, model.NewVolunteer("other-org", "Alan", "Turing", "alan@example.org"), nil))

	var vols []model.Volunteer
	require.NoError(t, st.ListWhere(ctx, CollectionVolunteers, "organization_id", org.Key, &vols))
	require.Len(t, vols, 2)
	assert.Equal(t, "Ada", vols[0].FirstName)
	assert.Equal(t, "Grace", vols[1].FirstName)
}

func TestMemoryStoreUpdateMergesPatch(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var org model.Organization
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Before", "before"), &org))

	var updated model.Organization
	require.NoError(t, st.Update(ctx, CollectionOrganizations, org.Key, map[string]interface{}{"name": "After"}, &updated))

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "before", updated.Slug)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	err := st.Update(ctx, CollectionOrganizations, "missing", map[string]interface{}{"name": "x"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var org model.Organization
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Gone", "gone"), &org))

	require.NoError(t, st.Delete(ctx, CollectionOrganizations, org.Key))
	assert.ErrorIs(t, st.GetByKey(ctx, CollectionOrganizations, org.Key, &org), ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, CollectionOrganizations, org.Key), ErrNotFound)
	assert.NotContains(t, st.order[CollectionOrganizations], org.Key)
}

func TestMemoryStoreDeletePreservesInsertOrder(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var first, second, third model.Organization
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("First", "first"), &first))
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Second", "second"), &second))
	require.NoError(t, st.Create(ctx, CollectionOrganizations, model.NewOrganization("Third", "third"), &third))

	require.NoError(t, st.Delete(ctx, CollectionOrganizations, second.Key))
	assert.Equal(t, []string{first.Key, third.Key}, st.order[CollectionOrganizations])

	var remaining []model.Organization
	require.NoError(t, st.ListAll(ctx, CollectionOrganizations, &remaining))
	require.Len(t, remaining, 2)
	assert.Equal(t, "first", remaining[0].Slug)
	assert.Equal(t, "third", remaining[1].Slug)
}

func TestMemoryStoreCount(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	active := model.NewVolunteer("org1", "A", "A", "a@example.org")
	inactive := model.NewVolunteer("org1", "B", "B", "b@example.org")
	inactive.Status = model.VolunteerStatusInactive
	elsewhere := model.NewVolunteer("org2", "C", "C", "c@example.org")

	for _, v := range []*model.Volunteer{active, inactive, elsewhere} {
		require.NoError(t, st.Create(ctx, CollectionVolunteers, v, nil))
	}

	count, err := st.Count(ctx, CollectionVolunteers, map[string]interface{}{
		"organization_id": "org1",
		"status":          model.VolunteerStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := st.Count(ctx, CollectionVolunteers, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, all)
}
