package volunteers

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/model"
)

const (
	nameMinLen  = 2
	nameMaxLen  = 60
	skillMaxLen = 40
	maxSkills   = 20
	phoneMaxLen = 30
)

// CreateVolunteerRequest is the payload for POST /volunteers
type CreateVolunteerRequest struct {
	OrganizationID string   `json:"organization_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
}

// UpdateVolunteerRequest is the payload for PATCH /volunteers/:id.
// organization_id is not accepted; a volunteer cannot move between
// organizations.
type UpdateVolunteerRequest struct {
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Skills    *[]string `json:"skills"`
	Status    *string   `json:"status"`
}

func validNamePart(field, value string) *apperrors.FieldError {
	if l := len(strings.TrimSpace(value)); l < nameMinLen || l > nameMaxLen {
		return &apperrors.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d characters", field, nameMinLen, nameMaxLen),
		}
	}
	return nil
}

func validEmail(email string) *apperrors.FieldError {
	if _, err := mail.ParseAddress(email); err != nil {
		return &apperrors.FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func validPhone(phone string) *apperrors.FieldError {
	if len(phone) > phoneMaxLen {
		return &apperrors.FieldError{Field: "phone", Message: "phone number too long"}
	}
	return nil
}

func validSkills(skills []string) *apperrors.FieldError {
	if len(skills) > maxSkills {
		return &apperrors.FieldError{
			Field:   "skills",
			Message: fmt.Sprintf("at most %d skills are allowed", maxSkills),
		}
	}
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed == "" || len(trimmed) > skillMaxLen {
			return &apperrors.FieldError{
				Field:   "skills",
				Message: fmt.Sprintf("each skill must be between 1 and %d characters", skillMaxLen),
			}
		}
	}
	return nil
}

func validStatus(status string) *apperrors.FieldError {
	if status != model.VolunteerStatusActive && status != model.VolunteerStatusInactive {
		return &apperrors.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("status must be %q or %q", model.VolunteerStatusActive, model.VolunteerStatusInactive),
		}
	}
	return nil
}

// Validate checks the create payload and returns one FieldError per
// offending field
func (r *CreateVolunteerRequest) Validate() []apperrors.FieldError {
	var details []apperrors.FieldError
	appendErr := func(fe *apperrors.FieldError) {
		if fe != nil {
			details = append(details, *fe)
		}
	}

	if strings.TrimSpace(r.OrganizationID) == "" {
		details = append(details, apperrors.FieldError{Field: "organization_id", Message: "organization_id is required"})
	}
	appendErr(validNamePart("first_name", r.FirstName))
	appendErr(validNamePart("last_name", r.LastName))
	appendErr(validEmail(r.Email))
	appendErr(validPhone(r.Phone))
	appendErr(validSkills(r.Skills))
	if r.Status != "" {
		appendErr(validStatus(r.Status))
	}
	return details
}

// Volunteer builds the model record the create payload describes
func (r *CreateVolunteerRequest) Volunteer() *model.Volunteer {
	vol := model.NewVolunteer(
		strings.TrimSpace(r.OrganizationID),
		strings.TrimSpace(r.FirstName),
		strings.TrimSpace(r.LastName),
		strings.TrimSpace(r.Email),
	)
	vol.Phone = r.Phone
	if r.Skills != nil {
		vol.Skills = r.Skills
	}
	if r.Status != "" {
		vol.Status = r.Status
	}
	return vol
}

// Validate checks the update payload. At least one field must be present.
func (r *UpdateVolunteerRequest) Validate() []apperrors.FieldError {
	var details []apperrors.FieldError
	appendErr := func(fe *apperrors.FieldError) {
		if fe != nil {
			details = append(details, *fe)
		}
	}

	if r.FirstName != nil {
		appendErr(validNamePart("first_name", *r.FirstName))
	}
	if r.LastName != nil {
		appendErr(validNamePart("last_name", *r.LastName))
	}
	if r.Email != nil {
		appendErr(validEmail(*r.Email))
	}
	if r.Phone != nil {
		appendErr(validPhone(*r.Phone))
	}
	if r.Skills != nil {
		appendErr(validSkills(*r.Skills))
	}
	if r.Status != nil {
		appendErr(validStatus(*r.Status))
	}
	return details
}

// Patch converts the update payload into the service-layer patch
func (r *UpdateVolunteerRequest) Patch() *model.VolunteerPatch {
	return &model.VolunteerPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Skills:    r.Skills,
		Status:    r.Status,
	}
}
