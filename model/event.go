package model

import "time"

// Event represents a scheduled activity owned by an organization. The
// backend only tracks enough of it to count dependents for summaries and
// delete preconditions; event management itself lives in another service.
type Event struct {
	Key            string    `json:"_key,omitempty"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	StartsAt       time.Time `json:"starts_at,omitempty"`
	Deleted        bool      `json:"deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
