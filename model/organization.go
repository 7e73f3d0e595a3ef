// Package model defines the data structures for the volunteer platform.
package model

import "time"

// OrgStatus is the lifecycle status of an organization
type OrgStatus = string

// Organization statuses
const (
	OrgStatusActive   OrgStatus = "active"
	OrgStatusInactive OrgStatus = "inactive"
)

// Address is a structured postal address for an organization
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Organization represents an organization in the directory
type Organization struct {
	Key           string    `json:"_key,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Address       *Address  `json:"address,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	DigestEnabled bool      `json:"digest_enabled"`
	Status        OrgStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewOrganization creates an organization with default values.
// The store assigns the key and timestamps on insert.
func NewOrganization(name, slug string) *Organization {
	return &Organization{
		Name:          name,
		Slug:          slug,
		DigestEnabled: true,
		Status:        OrgStatusActive,
	}
}

// OrganizationPatch is a partial update for an organization. Nil fields are
// left untouched.
type OrganizationPatch struct {
	Name          *string    `json:"name,omitempty"`
	Slug          *string    `json:"slug,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Address       *Address   `json:"address,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty"`
	ContactPhone  *string    `json:"contact_phone,omitempty"`
	Website       *string    `json:"website,omitempty"`
	DigestEnabled *bool      `json:"digest_enabled,omitempty"`
	Status        *OrgStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the patch carries no fields
func (p OrganizationPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil &&
		p.Address == nil && p.ContactEmail == nil && p.ContactPhone == nil &&
		p.Website == nil && p.DigestEnabled == nil && p.Status == nil
}

// Fields returns the patch as a document fragment for a store merge
func (p OrganizationPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Slug != nil {
		fields["slug"] = *p.Slug
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Address != nil {
		fields["address"] = p.Address
	}
	if p.ContactEmail != nil {
		fields["contact_email"] = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		fields["contact_phone"] = *p.ContactPhone
	}
	if p.Website != nil {
		fields["website"] = *p.Website
	}
	if p.DigestEnabled != nil {
		fields["digest_enabled"] = *p.DigestEnabled
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	return fields
}

// OrganizationSummary aggregates an organization's dependent records. It
// doubles as the delete precondition: an organization with any nonzero
// count cannot be removed.
type OrganizationSummary struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	TotalEvents         int     `json:"total_events"`
	TotalVolunteers     int     `json:"total_volunteers"`
	TotalDonations      int     `json:"total_donations"`
	TotalDonationAmount float64 `json:"total_donation_amount"`
}

// HasDependents reports whether any dependent records exist
func (s OrganizationSummary) HasDependents() bool {
	return s.TotalEvents > 0 || s.TotalVolunteers > 0 || s.TotalDonations > 0
}
