package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
)

// DonationService records donations arriving from the payment processor's
// event stream. There is no caller-facing surface; records exist to feed
// the organization summary counters.
type DonationService struct {
	store store.Store
	log   *zap.SugaredLogger
}

// NewDonationService wires a donation service
func NewDonationService(st store.Store, logger *zap.Logger) *DonationService {
	return &DonationService{store: st, log: logger.Sugar()}
}

// Record persists one donation after checking the organization reference
func (s *DonationService) Record(ctx context.Context, donation *model.Donation) (*model.Donation, error) {
	if donation.OrganizationID == "" {
		return nil, apperrors.Validation("Donation is missing an organization", []apperrors.FieldError{
			{Field: "organization_id", Message: "organization_id is required"},
		})
	}
	if donation.Amount <= 0 {
		return nil, apperrors.Validation("Donation amount must be positive", []apperrors.FieldError{
			{Field: "amount", Message: "amount must be greater than zero"},
		})
	}

	var org model.Organization
	if err := s.store.GetByKey(ctx, store.CollectionOrganizations, donation.OrganizationID, &org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Organization not found")
		}
		return nil, storeErr(s.log, "organization get", err)
	}

	var created model.Donation
	if err := s.store.Create(ctx, store.CollectionDonations, donation, &created); err != nil {
		return nil, storeErr(s.log, "donation create", err)
	}

	s.log.Infow("donation recorded", "donation", created.Key, "org", created.OrganizationID, "amount", created.Amount)
	return &created, nil
}
