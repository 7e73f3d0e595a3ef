// Package kafka runs the background consumer for the donation event stream.
package kafka

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/volunteerhub/backend/database"
	"github.com/volunteerhub/backend/events/modules/directory"
	"github.com/volunteerhub/backend/internal/services"
)

// DonationTopic carries donation.received events from the payment processor
const DonationTopic = "volunteerhub.donations"

func newDialer() *kafka.Dialer {
	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	// SASL/TLS only when credentials are provided; plain dialer for local
	// development
	if username != "" && password != "" {
		return &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: plain.Mechanism{Username: username, Password: password},
			TLS:           &tls.Config{},
		}
	}
	return &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
}

// RunEventProcessor connects to Kafka and consumes donation events until
// ctx is cancelled. The connection check retries 3 times before giving up.
func RunEventProcessor(ctx context.Context, brokers []string, donations *services.DonationService) error {
	logger := database.Logger().Sugar()

	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	dialer := newDialer()

	var conn *kafka.Conn
	var err error
	for i := 1; i <= 3; i++ {
		logger.Infof("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "volunteerhub-backend-worker",
		Topic:    DonationTopic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()

		logger.Infof("Kafka event processor started, listening for donation events")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				if err := directory.HandleDonationReceived(ctx, msg.Value, donations); err != nil {
					logger.Errorw("donation event rejected", "error", err)
				}
			}
		}
	}()

	return nil
}
