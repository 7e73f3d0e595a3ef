package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/policy"
	"github.com/volunteerhub/backend/internal/query"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
	"github.com/volunteerhub/backend/util"
)

// orgDescriptor tells the query engine how to read organization fields
var orgDescriptor = query.Descriptor[model.Organization]{
	Fields: map[string]func(model.Organization) string{
		"name":          func(o model.Organization) string { return o.Name },
		"slug":          func(o model.Organization) string { return o.Slug },
		"status":        func(o model.Organization) string { return o.Status },
		"contact_email": func(o model.Organization) string { return o.ContactEmail },
		"created_at":    func(o model.Organization) string { return o.CreatedAt.UTC().Format(sortableTime) },
	},
	Searchable: []string{"name", "slug", "description"},
	CreatedAt:  func(o model.Organization) time.Time { return o.CreatedAt },
}

// OrganizationService orchestrates policy, uniqueness, store and query
// engine for organization records
type OrganizationService struct {
	store  store.Store
	policy *policy.Policy
	log    *zap.SugaredLogger
	digest DigestNotifier
}

// NewOrganizationService wires an organization service. digest may be nil.
func NewOrganizationService(st store.Store, pol *policy.Policy, logger *zap.Logger, digest DigestNotifier) *OrganizationService {
	return &OrganizationService{store: st, policy: pol, log: logger.Sugar(), digest: digest}
}

// Create persists a new organization. The slug must not belong to any
// existing organization; the unique index backs the check against
// concurrent creates.
func (s *OrganizationService) Create(ctx context.Context, org *model.Organization, actor model.Actor) (*model.Organization, error) {
	if err := s.policy.Check(policy.OpOrganizationCreate, actor, ""); err != nil {
		return nil, err
	}

	org.Slug = util.NormalizeSlug(org.Slug)
	if org.Status == "" {
		org.Status = model.OrgStatusActive
	}

	var existing model.Organization
	err := s.store.GetByField(ctx, store.CollectionOrganizations, "slug", org.Slug, &existing)
	if err == nil {
		return nil, apperrors.Conflict("An organization with this slug already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(s.log, "organization slug lookup", err)
	}

	var created model.Organization
	if err := s.store.Create(ctx, store.CollectionOrganizations, org, &created); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race to the unique slug index
			return nil, apperrors.Conflict("An organization with this slug already exists")
		}
		return nil, storeErr(s.log, "organization create", err)
	}

	s.notify(ctx, "organization.created", &created)
	s.log.Infow("organization created", "org", created.Key, "slug", created.Slug, "actor", actor.UID)
	return &created, nil
}

// GetByID returns one organization. Ownership is checked before the fetch,
// so cross-organization probes cannot distinguish absent records.
func (s *OrganizationService) GetByID(ctx context.Context, id string, actor model.Actor) (*model.Organization, error) {
	if err := s.policy.Check(policy.OpOrganizationRead, actor, id); err != nil {
		return nil, err
	}

	var org model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, id, &org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Organization not found")
		}
		return nil, storeErr(s.log, "organization get", err)
	}
	return &org, nil
}

// List runs the query pipeline over the full organization directory.
// Listing is directory-wide; there is no per-caller scoping.
func (s *OrganizationService) List(ctx context.Context, opts query.Options) (*ListResult[model.Organization], error) {
	var orgs []model.Organization
	if err := s.store.ListAll(ctx, store.CollectionOrganizations, &orgs); err != nil {
		return nil, storeErr(s.log, "organization list", err)
	}

	result := query.Run(orgs, opts, orgDescriptor)

	page, limit := 1, result.Total
	if opts.Pagination != nil {
		page, limit = opts.Pagination.Page, opts.Pagination.Limit
		if page < 1 {
			page = 1
		}
		if limit <= 0 {
			limit = query.DefaultLimit
		}
	}
	return &ListResult[model.Organization]{Data: result.Page, Total: result.Total, Page: page, Limit: limit}, nil
}

// Update merges a partial patch into an organization. A patched slug must
// not be held by a different organization.
func (s *OrganizationService) Update(ctx context.Context, id string, patch model.OrganizationPatch, actor model.Actor) (*model.Organization, error) {
	if err := s.policy.Check(policy.OpOrganizationUpdate, actor, id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, apperrors.Validation("At least one field is required", nil)
	}

	var current model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, id, &current); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Organization not found")
		}
		return nil, storeErr(s.log, "organization get", err)
	}

	if patch.Slug != nil {
		slug := util.NormalizeSlug(*patch.Slug)
		patch.Slug = &slug

		var holder model.Organization
		err := s.store.GetByField(ctx, store.CollectionOrganizations, "slug", slug, &holder)
		if err == nil && holder.Key != id {
			return nil, apperrors.Conflict("An organization with this slug already exists")
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, storeErr(s.log, "organization slug lookup", err)
		}
	}

	var updated model.Organization
	if err := s.store.Update(ctx, store.CollectionOrganizations, id, patch.Fields(), &updated); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("Organization not found")
		case errors.Is(err, store.ErrConflict):
			return nil, apperrors.Conflict("An organization with this slug already exists")
		}
		return nil, storeErr(s.log, "organization update", err)
	}

	s.notify(ctx, "organization.updated", &updated)
	return &updated, nil
}

// GetSummary aggregates the organization's dependent records from the
// three collaborating counters
func (s *OrganizationService) GetSummary(ctx context.Context, id string, actor model.Actor) (*model.OrganizationSummary, error) {
	if err := s.policy.Check(policy.OpOrganizationRead, actor, id); err != nil {
		return nil, err
	}

	var org model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, id, &org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Organization not found")
		}
		return nil, storeErr(s.log, "organization get", err)
	}

	return s.aggregate(ctx, &org)
}

func (s *OrganizationService) aggregate(ctx context.Context, org *model.Organization) (*model.OrganizationSummary, error) {
	events, err := s.store.Count(ctx, store.CollectionEvents, map[string]interface{}{
		"organization_id": org.Key,
		"deleted":         false,
	})
	if err != nil {
		return nil, storeErr(s.log, "event count", err)
	}

	volunteers, err := s.store.Count(ctx, store.CollectionVolunteers, map[string]interface{}{
		"organization_id": org.Key,
		"status":          model.VolunteerStatusActive,
	})
	if err != nil {
		return nil, storeErr(s.log, "volunteer count", err)
	}

	var donations []model.Donation
	if err := s.store.ListWhere(ctx, store.CollectionDonations, "organization_id", org.Key, &donations); err != nil {
		return nil, storeErr(s.log, "donation list", err)
	}

	summary := &model.OrganizationSummary{
		ID:              org.Key,
		Name:            org.Name,
		TotalEvents:     events,
		TotalVolunteers: volunteers,
	}
	for _, donation := range donations {
		if donation.Deleted {
			continue
		}
		summary.TotalDonations++
		summary.TotalDonationAmount += donation.Amount
	}
	return summary, nil
}

// Delete removes an organization. Deletion is refused while any dependent
// events, active volunteers or donations exist. The precondition check and
// the delete are separate store calls; a concurrent insert can slip
// between them, which the unique-index mitigation does not cover.
func (s *OrganizationService) Delete(ctx context.Context, id string, actor model.Actor) error {
	if err := s.policy.Check(policy.OpOrganizationDelete, actor, id); err != nil {
		return err
	}

	var org model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, id, &org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Organization not found")
		}
		return storeErr(s.log, "organization get", err)
	}

	summary, err := s.aggregate(ctx, &org)
	if err != nil {
		return err
	}
	if summary.HasDependents() {
		return apperrors.BadRequest("Organization has dependent records and cannot be deleted")
	}

	if err := s.store.Delete(ctx, store.CollectionOrganizations, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Organization not found")
		}
		return storeErr(s.log, "organization delete", err)
	}

	s.notify(ctx, "organization.deleted", &org)
	s.log.Infow("organization deleted", "org", id, "actor", actor.UID)
	return nil
}

func (s *OrganizationService) notify(ctx context.Context, action string, org *model.Organization) {
	if s.digest == nil || !org.DigestEnabled {
		return
	}
	s.digest.OrganizationChanged(ctx, action, org)
}
