package models

import (
	"github.com/google/uuid"
)

// Organization represents the root entity for multi-tenancy. Every contact,
// note and meta row is owned by exactly one organization.
type Organization struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:255" validate:"required,max=255"`
	OwnerUserID uuid.UUID `json:"owner_user_id" gorm:"type:uuid;not null" validate:"required"`

	// Relationships
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Contacts    []Contact    `json:"contacts,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
