package models

import (
	"github.com/google/uuid"
)

// MaxMetaPerContact caps the number of custom key/value pairs on a contact.
const MaxMetaPerContact = 5

// Contact is a tenant-owned person record. Email is optional; when present it
// is unique per organization, compared case-insensitively (enforced by a
// functional unique index on (organization_id, lower(email))).
type Contact struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index:idx_contacts_org_name" validate:"required"`
	FirstName      string    `json:"first_name" gorm:"not null;size:255" validate:"required,max=255"`
	LastName       string    `json:"last_name" gorm:"not null;size:255;index:idx_contacts_org_name" validate:"required,max=255"`
	Email          *string   `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	Phone          *string   `json:"phone" gorm:"size:255" validate:"omitempty,max=255"`
	AvatarPath     *string   `json:"avatar_path" gorm:"size:500"`
	CreatedBy      uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy      uuid.UUID `json:"updated_by" gorm:"type:uuid;not null"`

	// Relationships
	Organization Organization  `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Notes        []ContactNote `json:"notes,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Meta         []ContactMeta `json:"meta,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
