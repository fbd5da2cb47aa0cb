package models

import (
	"github.com/google/uuid"
)

// ContactNote is a free-text note on a contact. UserID is the author; only
// the author may edit or delete the note. Notes die with their contact.
type ContactNote struct {
	BaseModel
	ContactID uuid.UUID `json:"contact_id" gorm:"type:uuid;not null;index" validate:"required"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null" validate:"required"`
	Body      string    `json:"body" gorm:"type:text;not null" validate:"required"`

	// Relationships
	Contact Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for ContactNote
func (ContactNote) TableName() string {
	return "contact_notes"
}
