package directory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
)

func TestHandleDonationReceived(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewDonationService(st, zap.NewNop())
	ctx := context.Background()

	var org model.Organization
	require.NoError(t, st.Create(ctx, store.CollectionOrganizations, model.NewOrganization("Org", "org"), &org))

	payload, err := json.Marshal(DonationReceivedEvent{
		EventType:      "donation.received",
		EventID:        "evt-1",
		EventTime:      time.Now().UTC(),
		SchemaVersion:  "v1",
		OrganizationID: org.Key,
		DonorName:      "Anonymous",
		Amount:         50,
		Currency:       "CAD",
		ReceivedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, HandleDonationReceived(ctx, payload, svc))

	count, err := st.Count(ctx, store.CollectionDonations, map[string]interface{}{"organization_id": org.Key})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandleDonationReceivedRejectsBadEvents(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewDonationService(st, zap.NewNop())
	ctx := context.Background()

	assert.Error(t, HandleDonationReceived(ctx, []byte("not json"), svc))

	// Missing organization
	payload, _ := json.Marshal(DonationReceivedEvent{Amount: 50})
	assert.Error(t, HandleDonationReceived(ctx, payload, svc))

	// Non-positive amount
	payload, _ = json.Marshal(DonationReceivedEvent{OrganizationID: "org", Amount: 0})
	assert.Error(t, HandleDonationReceived(ctx, payload, svc))
}
