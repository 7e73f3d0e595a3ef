package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
)

func TestDonationRecord(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDonationService(st, zap.NewNop())
	ctx := context.Background()
	org := seedOrg(t, st, "org")

	created, err := svc.Record(ctx, &model.Donation{
		OrganizationID: org.Key,
		DonorName:      "Anonymous",
		Amount:         25,
		Currency:       "CAD",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Key)

	count, err := st.Count(ctx, store.CollectionDonations, map[string]interface{}{"organization_id": org.Key})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDonationRecordRejectsInvalidInput(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDonationService(st, zap.NewNop())
	ctx := context.Background()
	org := seedOrg(t, st, "org")

	_, err := svc.Record(ctx, &model.Donation{Amount: 25})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = svc.Record(ctx, &model.Donation{OrganizationID: org.Key, Amount: 0})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = svc.Record(ctx, &model.Donation{OrganizationID: "ghost", Amount: 25})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
