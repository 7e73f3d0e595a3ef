// Package directory handles Kafka event production for directory changes.
package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/volunteerhub/backend/database"
	"github.com/volunteerhub/backend/model"
)

// DigestTopic carries directory change events for the weekly digest
const DigestTopic = "volunteerhub.digest"

// DigestProducer publishes directory change events to Kafka. It satisfies
// the service layer's notifier interface.
type DigestProducer struct {
	Writer *kafka.Writer
}

// NewDigestProducer initializes a new Kafka writer for digest events
func NewDigestProducer(brokers []string) *DigestProducer {
	return &DigestProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    DigestTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *DigestProducer) publish(ctx context.Context, key string, event DigestEvent) {
	event.EventID = uuid.New().String()
	event.EventTime = time.Now().UTC()
	event.SchemaVersion = "v1"

	payload, err := json.Marshal(event)
	if err != nil {
		database.Logger().Sugar().Errorw("digest event marshal failed", "type", event.EventType, "error", err)
		return
	}

	// Digest delivery is best effort; a broker outage must not fail the
	// originating request
	if err := p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		database.Logger().Sugar().Errorw("digest event publish failed", "type", event.EventType, "error", err)
	}
}

// OrganizationChanged publishes an organization lifecycle event
func (p *DigestProducer) OrganizationChanged(ctx context.Context, action string, org *model.Organization) {
	p.publish(ctx, org.Key, DigestEvent{
		EventType:        action,
		OrganizationID:   org.Key,
		OrganizationName: org.Name,
	})
}

// VolunteerChanged publishes a volunteer lifecycle event
func (p *DigestProducer) VolunteerChanged(ctx context.Context, action string, vol *model.Volunteer) {
	p.publish(ctx, vol.OrganizationID, DigestEvent{
		EventType:      action,
		OrganizationID: vol.OrganizationID,
		VolunteerID:    vol.Key,
		VolunteerName:  vol.FirstName + " " + vol.LastName,
	})
}

// Close cleans up the Kafka writer
func (p *DigestProducer) Close() error {
	return p.Writer.Close()
}
