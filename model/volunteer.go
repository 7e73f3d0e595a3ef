package model

import "time"

// VolunteerStatus is the lifecycle status of a volunteer
type VolunteerStatus = string

// Volunteer statuses
const (
	VolunteerStatusActive   VolunteerStatus = "active"
	VolunteerStatusInactive VolunteerStatus = "inactive"
)

// Volunteer represents a volunteer belonging to an organization.
// OrganizationID is immutable after creation and must always reference an
// existing organization.
type Volunteer struct {
	Key            string          `json:"_key,omitempty"`
	OrganizationID string          `json:"organization_id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Skills         []string        `json:"skills"`
	Status         VolunteerStatus `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewVolunteer creates a volunteer with default values
func NewVolunteer(orgID, firstName, lastName, email string) *Volunteer {
	return &Volunteer{
		OrganizationID: orgID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Skills:         []string{},
		Status:         VolunteerStatusActive,
	}
}

// HasSkill reports whether the volunteer carries the given skill tag
func (v *Volunteer) HasSkill(skill string) bool {
	for _, s := range v.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// VolunteerPatch is a partial update for a volunteer. OrganizationID is
// deliberately absent: it cannot change after creation.
type VolunteerPatch struct {
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Skills    *[]string        `json:"skills,omitempty"`
	Status    *VolunteerStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the patch carries no fields
func (p VolunteerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Skills == nil && p.Status == nil
}

// Fields returns the patch as a document fragment for a store merge
func (p VolunteerPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.Skills != nil {
		fields["skills"] = *p.Skills
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	return fields
}
