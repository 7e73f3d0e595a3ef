// Package directory defines the Kafka event contracts for the directory
// digest stream and the donation ingestion stream.
package directory

import (
	"time"
)

// DigestEvent is one directory change published to the digest topic.
// Consumers batch these into the weekly digest mail.
type DigestEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`

	// Set for volunteer.* events only
	VolunteerID   string `json:"volunteer_id,omitempty"`
	VolunteerName string `json:"volunteer_name,omitempty"`
}

// DonationReceivedEvent is emitted by the payment processor when a
// donation settles. The service consumes it and records the donation.
type DonationReceivedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	OrganizationID string    `json:"organization_id"`
	DonorName      string    `json:"donor_name,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency,omitempty"`
	ReceivedAt     time.Time `json:"received_at"`
}
