package organizations

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/model"
	"github.com/volunteerhub/backend/util"
)

const (
	nameMinLen        = 3
	nameMaxLen        = 100
	slugMinLen        = 3
	slugMaxLen        = 50
	descriptionMaxLen = 500
	emailMaxLen       = 100
	phoneMaxLen       = 20
	websiteMaxLen     = 200
)

// CreateOrganizationRequest is the payload for POST /organizations
type CreateOrganizationRequest struct {
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Address       *model.Address `json:"address"`
	ContactEmail  string         `json:"contact_email"`
	ContactPhone  string         `json:"contact_phone"`
	Website       string         `json:"website"`
	DigestEnabled *bool          `json:"digest_enabled"`
}

// UpdateOrganizationRequest is the payload for PATCH /organizations/:id.
// Pointer fields distinguish "absent" from "set to zero value".
type UpdateOrganizationRequest struct {
	Name          *string        `json:"name"`
	Slug          *string        `json:"slug"`
	Description   *string        `json:"description"`
	Address       *model.Address `json:"address"`
	ContactEmail  *string        `json:"contact_email"`
	ContactPhone  *string        `json:"contact_phone"`
	Website       *string        `json:"website"`
	DigestEnabled *bool          `json:"digest_enabled"`
	Status        *string        `json:"status"`
}

func validName(name string) *apperrors.FieldError {
	if l := len(strings.TrimSpace(name)); l < nameMinLen || l > nameMaxLen {
		return &apperrors.FieldError{
			Field:   "name",
			Message: fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen),
		}
	}
	return nil
}

func validSlug(slug string) *apperrors.FieldError {
	normalized := util.NormalizeSlug(slug)
	if l := len(normalized); l < slugMinLen || l > slugMaxLen {
		return &apperrors.FieldError{
			Field:   "slug",
			Message: fmt.Sprintf("slug must be between %d and %d characters", slugMinLen, slugMaxLen),
		}
	}
	if !util.IsValidSlug(normalized) {
		return &apperrors.FieldError{
			Field:   "slug",
			Message: "slug may only contain lowercase letters, digits and hyphens",
		}
	}
	return nil
}

func validDescription(description string) *apperrors.FieldError {
	if len(description) > descriptionMaxLen {
		return &apperrors.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must not exceed %d characters", descriptionMaxLen),
		}
	}
	return nil
}

func validEmail(field, email string) *apperrors.FieldError {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil || len(email) > emailMaxLen {
		return &apperrors.FieldError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}

func validWebsite(website string) *apperrors.FieldError {
	if website == "" {
		return nil
	}
	u, err := url.Parse(website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || len(website) > websiteMaxLen {
		return &apperrors.FieldError{Field: "website", Message: "must be a valid http(s) URL"}
	}
	return nil
}

func validPhone(phone string) *apperrors.FieldError {
	if len(phone) > phoneMaxLen {
		return &apperrors.FieldError{Field: "contact_phone", Message: "phone number too long"}
	}
	return nil
}

// Validate checks the create payload and returns one FieldError per
// offending field
func (r *CreateOrganizationRequest) Validate() []apperrors.FieldError {
	var details []apperrors.FieldError
	appendErr := func(fe *apperrors.FieldError) {
		if fe != nil {
			details = append(details, *fe)
		}
	}

	appendErr(validName(r.Name))
	appendErr(validSlug(r.Slug))
	appendErr(validDescription(r.Description))
	appendErr(validEmail("contact_email", r.ContactEmail))
	appendErr(validWebsite(r.Website))
	appendErr(validPhone(r.ContactPhone))
	return details
}

// Organization builds the model record the create payload describes
func (r *CreateOrganizationRequest) Organization() *model.Organization {
	org := model.NewOrganization(strings.TrimSpace(r.Name), util.NormalizeSlug(r.Slug))
	org.Description = strings.TrimSpace(r.Description)
	org.Address = r.Address
	org.ContactEmail = r.ContactEmail
	org.ContactPhone = r.ContactPhone
	org.Website = r.Website
	if r.DigestEnabled != nil {
		org.DigestEnabled = *r.DigestEnabled
	}
	return org
}

// Validate checks the update payload. At least one field must be present.
func (r *UpdateOrganizationRequest) Validate() []apperrors.FieldError {
	var details []apperrors.FieldError
	appendErr := func(fe *apperrors.FieldError) {
		if fe != nil {
			details = append(details, *fe)
		}
	}

	if r.Name != nil {
		appendErr(validName(*r.Name))
	}
	if r.Slug != nil {
		appendErr(validSlug(*r.Slug))
	}
	if r.Description != nil {
		appendErr(validDescription(*r.Description))
	}
	if r.ContactEmail != nil {
		appendErr(validEmail("contact_email", *r.ContactEmail))
	}
	if r.Website != nil {
		appendErr(validWebsite(*r.Website))
	}
	if r.ContactPhone != nil {
		appendErr(validPhone(*r.ContactPhone))
	}
	if r.Status != nil && *r.Status != model.OrgStatusActive && *r.Status != model.OrgStatusInactive {
		details = append(details, apperrors.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("status must be %q or %q", model.OrgStatusActive, model.OrgStatusInactive),
		})
	}
	return details
}

// Patch converts the update payload into the service-layer patch
func (r *UpdateOrganizationRequest) Patch() *model.OrganizationPatch {
	patch := &model.OrganizationPatch{
		Description:   r.Description,
		Address:       r.Address,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
		Website:       r.Website,
		DigestEnabled: r.DigestEnabled,
		Status:        r.Status,
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		patch.Name = &trimmed
	}
	if r.Slug != nil {
		normalized := util.NormalizeSlug(*r.Slug)
		patch.Slug = &normalized
	}
	return patch
}
