package models

import (
	"github.com/google/uuid"
)

// MembershipRole represents the role of a user within an organization
type MembershipRole string

const (
	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleMember MembershipRole = "member"
)

// Valid reports whether the role is one of the known values
func (r MembershipRole) Valid() bool {
	return r == MembershipRoleAdmin || r == MembershipRoleMember
}

// Membership joins a user to an organization with a role. A user may belong
// to many organizations but holds at most one membership per organization.
type Membership struct {
	BaseModel
	OrganizationID uuid.UUID      `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_org_user;index" validate:"required"`
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_org_user;index" validate:"required"`
	Role           MembershipRole `json:"role" gorm:"type:varchar(50);not null;default:'member'" validate:"required"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	User         User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}
