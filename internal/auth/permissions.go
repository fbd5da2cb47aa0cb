package auth

import (
	"errors"

	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action names an operation on organization-scoped resources
type Action string

const (
	ActionViewAny   Action = "view_any"
	ActionView      Action = "view"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionDuplicate Action = "duplicate"
)

// readOnly reports whether the action never mutates data
func (a Action) readOnly() bool {
	return a == ActionViewAny || a == ActionView
}

// MembershipLookup is the membership read the gate needs. Satisfied by
// repository.MembershipRepository.
type MembershipLookup interface {
	GetByOrganizationAndUser(orgID, userID uuid.UUID) (*models.Membership, error)
}

// Gate answers authorization questions from the (organization, user) -> role
// mapping. Admins may perform any action; members only read. A user with no
// membership in the organization may do nothing.
type Gate struct {
	memberships MembershipLookup
}

// NewGate creates a new authorization gate
func NewGate(memberships MembershipLookup) *Gate {
	return &Gate{memberships: memberships}
}

// Can reports whether the user may perform the action within the organization
func (g *Gate) Can(orgID, userID uuid.UUID, action Action) (bool, error) {
	membership, err := g.memberships.GetByOrganizationAndUser(orgID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	switch membership.Role {
	case models.MembershipRoleAdmin:
		return true, nil
	case models.MembershipRoleMember:
		return action.readOnly(), nil
	default:
		return false, nil
	}
}
