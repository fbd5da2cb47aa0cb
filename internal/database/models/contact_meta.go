package models

import (
	"github.com/google/uuid"
)

// ContactMeta is an ad hoc key/value pair attached to a contact, capped at
// MaxMetaPerContact per contact. The cap is enforced in the service layer,
// not by the database.
type ContactMeta struct {
	BaseModel
	ContactID uuid.UUID `json:"contact_id" gorm:"type:uuid;not null;index:idx_contact_meta_contact_key" validate:"required"`
	Key       string    `json:"key" gorm:"not null;size:255;index:idx_contact_meta_contact_key" validate:"required,max=255"`
	Value     string    `json:"value" gorm:"not null;size:1000" validate:"required,max=1000"`

	// Relationships
	Contact Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ContactMeta
func (ContactMeta) TableName() string {
	return "contact_meta"
}
