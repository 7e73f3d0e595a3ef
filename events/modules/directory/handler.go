// Package directory handles Kafka event consumption for donation ingestion.
package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/volunteerhub/backend/model"
)

// DonationRecorder persists donations arriving off the event stream
type DonationRecorder interface {
	Record(ctx context.Context, donation *model.Donation) (*model.Donation, error)
}

// HandleDonationReceived processes one donation.received event from Kafka
func HandleDonationReceived(ctx context.Context, msg []byte, recorder DonationRecorder) error {
	var event DonationReceivedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal DonationReceivedEvent: %w", err)
	}

	if event.OrganizationID == "" || event.Amount <= 0 {
		return fmt.Errorf("invalid event: missing required fields")
	}

	donation := &model.Donation{
		OrganizationID: event.OrganizationID,
		DonorName:      event.DonorName,
		Amount:         event.Amount,
		Currency:       event.Currency,
		ReceivedAt:     event.ReceivedAt,
	}

	_, err := recorder.Record(ctx, donation)
	return err
}
