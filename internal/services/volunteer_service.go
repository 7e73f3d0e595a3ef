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
)

// volunteerDescriptor tells the query engine how to read volunteer fields
var volunteerDescriptor = query.Descriptor[model.Volunteer]{
	Fields: map[string]func(model.Volunteer) string{
		"first_name":      func(v model.Volunteer) string { return v.FirstName },
		"last_name":       func(v model.Volunteer) string { return v.LastName },
		"email":           func(v model.Volunteer) string { return v.Email },
		"status":          func(v model.Volunteer) string { return v.Status },
		"organization_id": func(v model.Volunteer) string { return v.OrganizationID },
		"created_at":      func(v model.Volunteer) string { return v.CreatedAt.UTC().Format(sortableTime) },
	},
	Searchable: []string{"first_name", "last_name", "email"},
	Tags:       func(v model.Volunteer) []string { return v.Skills },
	CreatedAt:  func(v model.Volunteer) time.Time { return v.CreatedAt },
}

// VolunteerService orchestrates policy, store and query engine for
// volunteer records, scoped to an organization
type VolunteerService struct {
	store  store.Store
	policy *policy.Policy
	log    *zap.SugaredLogger
	digest DigestNotifier
}

// NewVolunteerService wires a volunteer service. digest may be nil.
func NewVolunteerService(st store.Store, pol *policy.Policy, logger *zap.Logger, digest DigestNotifier) *VolunteerService {
	return &VolunteerService{store: st, policy: pol, log: logger.Sugar(), digest: digest}
}

// orgDigestEnabled reports whether the volunteer's organization opted into
// digest notifications
func (s *VolunteerService) orgDigestEnabled(ctx context.Context, orgID string) bool {
	var org model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, orgID, &org); err != nil {
		return false
	}
	return org.DigestEnabled
}

func (s *VolunteerService) notify(ctx context.Context, action string, vol *model.Volunteer) {
	if s.digest == nil || !s.orgDigestEnabled(ctx, vol.OrganizationID) {
		return
	}
	s.digest.VolunteerChanged(ctx, action, vol)
}

// Create persists a new volunteer. The target organization must exist;
// skills default to an empty set and status to active. Volunteer emails
// are not checked for uniqueness.
func (s *VolunteerService) Create(ctx context.Context, vol *model.Volunteer, actor model.Actor) (*model.Volunteer, error) {
	if err := s.policy.Check(policy.OpVolunteerCreate, actor, vol.OrganizationID); err != nil {
		return nil, err
	}

	var org model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, vol.OrganizationID, &org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Organization not found")
		}
		return nil, storeErr(s.log, "organization get", err)
	}

	if vol.Skills == nil {
		vol.Skills = []string{}
	}
	if vol.Status == "" {
		vol.Status = model.VolunteerStatusActive
	}

	var created model.Volunteer
	if err := s.store.Create(ctx, store.CollectionVolunteers, vol, &created); err != nil {
		return nil, storeErr(s.log, "volunteer create", err)
	}

	s.notify(ctx, "volunteer.created", &created)
	s.log.Infow("volunteer created", "volunteer", created.Key, "org", created.OrganizationID, "actor", actor.UID)
	return &created, nil
}

// GetByID returns one volunteer. The record is fetched first because the
// ownership check needs its organization; an existing volunteer in another
// organization still comes back Forbidden.
func (s *VolunteerService) GetByID(ctx context.Context, id string, actor model.Actor) (*model.Volunteer, error) {
	vol, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(policy.OpVolunteerRead, actor, vol.OrganizationID); err != nil {
		return nil, err
	}
	return vol, nil
}

// List runs the query pipeline over one organization's volunteers. When
// orgID is empty the actor's own organization is used. The store fetch is
// pre-scoped to the organization; the engine applies the remaining
// predicates.
func (s *VolunteerService) List(ctx context.Context, orgID string, opts query.Options, actor model.Actor) (*ListResult[model.Volunteer], error) {
	if orgID == "" {
		orgID = actor.OrgID
	}
	if err := s.policy.Check(policy.OpVolunteerRead, actor, orgID); err != nil {
		return nil, err
	}

	var vols []model.Volunteer
	if err := s.store.ListWhere(ctx, store.CollectionVolunteers, "organization_id", orgID, &vols); err != nil {
		return nil, storeErr(s.log, "volunteer list", err)
	}

	result := query.Run(vols, opts, volunteerDescriptor)

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
	return &ListResult[model.Volunteer]{Data: result.Page, Total: result.Total, Page: page, Limit: limit}, nil
}

// Update merges a partial patch into a volunteer. The organization
// reference is immutable; patches cannot carry it.
func (s *VolunteerService) Update(ctx context.Context, id string, patch model.VolunteerPatch, actor model.Actor) (*model.Volunteer, error) {
	vol, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(policy.OpVolunteerUpdate, actor, vol.OrganizationID); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, apperrors.Validation("At least one field is required", nil)
	}

	var updated model.Volunteer
	if err := s.store.Update(ctx, store.CollectionVolunteers, id, patch.Fields(), &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Volunteer not found")
		}
		return nil, storeErr(s.log, "volunteer update", err)
	}

	s.notify(ctx, "volunteer.updated", &updated)
	return &updated, nil
}

// Delete removes a volunteer
func (s *VolunteerService) Delete(ctx context.Context, id string, actor model.Actor) error {
	vol, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Check(policy.OpVolunteerDelete, actor, vol.OrganizationID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, store.CollectionVolunteers, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Volunteer not found")
		}
		return storeErr(s.log, "volunteer delete", err)
	}

	s.notify(ctx, "volunteer.deleted", vol)
	s.log.Infow("volunteer deleted", "volunteer", id, "actor", actor.UID)
	return nil
}

func (s *VolunteerService) fetch(ctx context.Context, id string) (*model.Volunteer, error) {
	var vol model.Volunteer
	if err := s.store.GetByKey(ctx, store.CollectionVolunteers, id, &vol); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Volunteer not found")
		}
		return nil, storeErr(s.log, "volunteer get", err)
	}
	return &vol, nil
}
