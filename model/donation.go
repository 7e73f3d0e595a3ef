package model

import "time"

// Donation represents a monetary donation made to an organization.
// Records are ingested from the payment processor's event stream.
type Donation struct {
	Key            string    `json:"_key,omitempty"`
	OrganizationID string    `json:"organization_id"`
	DonorName      string    `json:"donor_name,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency,omitempty"`
	Deleted        bool      `json:"deleted"`
	ReceivedAt     time.Time `json:"received_at,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
