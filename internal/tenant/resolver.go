package tenant

import (
	"context"
	"errors"
	"fmt"

	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipSource is the membership lookup the resolver needs. Satisfied by
// repository.MembershipRepository.
type MembershipSource interface {
	GetFirstForUser(userID uuid.UUID) (*models.Membership, error)
}

// Resolver determines which organization a session is scoped to.
//
// Resolution order: the session's cached value wins without re-validating
// membership; otherwise the user's earliest membership is used and cached as
// a side effect. Repeated calls with a warm session never hit the membership
// table again.
type Resolver struct {
	sessions    SessionStore
	memberships MembershipSource
}

// NewResolver creates a current-organization resolver
func NewResolver(sessions SessionStore, memberships MembershipSource) *Resolver {
	return &Resolver{
		sessions:    sessions,
		memberships: memberships,
	}
}

// Resolve returns the session's current organization id. ok is false when the
// session has no cached value and the user belongs to no organization.
func (r *Resolver) Resolve(ctx context.Context, sessionKey string, userID uuid.UUID) (uuid.UUID, bool, error) {
	orgID, ok, err := r.sessions.Get(ctx, sessionKey)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("resolve current organization: %w", err)
	}
	if ok {
		return orgID, true, nil
	}

	if userID == uuid.Nil {
		return uuid.Nil, false, nil
	}

	membership, err := r.memberships.GetFirstForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("resolve current organization: %w", err)
	}

	if err := r.sessions.Set(ctx, sessionKey, membership.OrganizationID); err != nil {
		return uuid.Nil, false, fmt.Errorf("cache current organization: %w", err)
	}
	return membership.OrganizationID, true, nil
}

// Set unconditionally overwrites the session's current organization. Callers
// that act on user input (the organization-switch endpoint) must verify
// membership first; Set itself performs no check.
func (r *Resolver) Set(ctx context.Context, sessionKey string, organizationID uuid.UUID) error {
	return r.sessions.Set(ctx, sessionKey, organizationID)
}

// Clear drops the session's current organization
func (r *Resolver) Clear(ctx context.Context, sessionKey string) error {
	return r.sessions.Clear(ctx, sessionKey)
}
