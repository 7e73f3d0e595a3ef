package directory

import (
	"context"

	"github.com/volunteerhub/backend/internal/query"
	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/model"
)

// Resolvers answers directory queries using the service layer, so GraphQL
// reads obey the same policy checks as REST.
type Resolvers struct {
	Organizations *services.OrganizationService
	Volunteers    *services.VolunteerService
}

func orgView(org *model.Organization) map[string]interface{} {
	view := map[string]interface{}{
		"id":             org.Key,
		"name":           org.Name,
		"slug":           org.Slug,
		"description":    org.Description,
		"contact_email":  org.ContactEmail,
		"contact_phone":  org.ContactPhone,
		"website":        org.Website,
		"digest_enabled": org.DigestEnabled,
		"status":         org.Status,
		"created_at":     org.CreatedAt,
		"updated_at":     org.UpdatedAt,
	}
	if org.Address != nil {
		view["address"] = map[string]interface{}{
			"street":      org.Address.Street,
			"city":        org.Address.City,
			"province":    org.Address.Province,
			"postal_code": org.Address.PostalCode,
			"country":     org.Address.Country,
		}
	}
	return view
}

func volunteerView(vol *model.Volunteer) map[string]interface{} {
	return map[string]interface{}{
		"id":              vol.Key,
		"organization_id": vol.OrganizationID,
		"first_name":      vol.FirstName,
		"last_name":       vol.LastName,
		"email":           vol.Email,
		"phone":           vol.Phone,
		"skills":          vol.Skills,
		"status":          vol.Status,
		"created_at":      vol.CreatedAt,
		"updated_at":      vol.UpdatedAt,
	}
}

// ResolveOrganizations lists the directory with optional filtering
func (r *Resolvers) ResolveOrganizations(ctx context.Context, opts query.Options) (interface{}, error) {
	result, err := r.Organizations.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	data := make([]map[string]interface{}, 0, len(result.Data))
	for i := range result.Data {
		data = append(data, orgView(&result.Data[i]))
	}
	return map[string]interface{}{
		"data":  data,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	}, nil
}

// ResolveOrganization reads one organization by id
func (r *Resolvers) ResolveOrganization(ctx context.Context, id string, actor model.Actor) (interface{}, error) {
	org, err := r.Organizations.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return orgView(org), nil
}

// ResolveOrganizationSummary aggregates one organization's dependents
func (r *Resolvers) ResolveOrganizationSummary(ctx context.Context, id string, actor model.Actor) (interface{}, error) {
	summary, err := r.Organizations.GetSummary(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":                    summary.ID,
		"name":                  summary.Name,
		"total_events":          summary.TotalEvents,
		"total_volunteers":      summary.TotalVolunteers,
		"total_donations":       summary.TotalDonations,
		"total_donation_amount": summary.TotalDonationAmount,
	}, nil
}

// ResolveVolunteers lists a roster with optional filtering
func (r *Resolvers) ResolveVolunteers(ctx context.Context, orgID string, opts query.Options, actor model.Actor) (interface{}, error) {
	result, err := r.Volunteers.List(ctx, orgID, opts, actor)
	if err != nil {
		return nil, err
	}

	data := make([]map[string]interface{}, 0, len(result.Data))
	for i := range result.Data {
		data = append(data, volunteerView(&result.Data[i]))
	}
	return map[string]interface{}{
		"data":  data,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	}, nil
}
