// Package services implements the domain-service layer: access decisions,
// cross-record invariants, and listing over organization and volunteer
// records. Services are stateless; every dependency is injected and no
// state is retained between calls.
package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
)

// ListResult is the service-facing response shape for a listing call.
// Callers compute totalPages as ceil(total / limit).
type ListResult[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// sortableTime is a fixed-width timestamp layout so the query engine's
// lexicographic compare orders created_at chronologically. RFC3339Nano
// drops trailing zeros, which breaks that property.
const sortableTime = "2006-01-02T15:04:05.000000000Z07:00"

// DigestNotifier publishes record lifecycle changes for the digest system.
// Implementations must be safe to call fire-and-forget; a nil notifier
// disables publishing.
type DigestNotifier interface {
	OrganizationChanged(ctx context.Context, action string, org *model.Organization)
	VolunteerChanged(ctx context.Context, action string, vol *model.Volunteer)
}

// storeErr translates store failures the service did not expect into the
// generic internal error, logging the cause. Sentinel errors must be
// handled before calling this.
func storeErr(log *zap.SugaredLogger, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrConflict) {
		// A sentinel reaching here is a service bug; still avoid leaking it
		log.Errorw("unhandled store sentinel", "op", op, "err", err)
	} else {
		log.Errorw("store failure", "op", op, "err", err)
	}
	return apperrors.Internal("")
}
