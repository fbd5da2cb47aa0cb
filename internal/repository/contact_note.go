package repository

import (
	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactNoteRepository handles database operations for contact notes
type ContactNoteRepository struct {
	db *gorm.DB
}

// NewContactNoteRepository creates a new contact note repository
func NewContactNoteRepository(db *gorm.DB) *ContactNoteRepository {
	return &ContactNoteRepository{db: db}
}

// Create creates a new contact note
func (r *ContactNoteRepository) Create(note *models.ContactNote) error {
	return r.db.Create(note).Error
}

// GetByID retrieves a note by ID within the given contact
func (r *ContactNoteRepository) GetByID(contactID, id uuid.UUID) (*models.ContactNote, error) {
	var note models.ContactNote
	err := r.db.First(&note, "contact_id = ? AND id = ?", contactID, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByContact retrieves the contact's notes with their authors, newest first
func (r *ContactNoteRepository) ListByContact(contactID uuid.UUID) ([]models.ContactNote, error) {
	var notes []models.ContactNote
	err := r.db.
		Preload("User").
		Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Update updates a contact note
func (r *ContactNoteRepository) Update(note *models.ContactNote) error {
	return r.db.Save(note).Error
}

// Delete deletes a contact note
func (r *ContactNoteRepository) Delete(contactID, id uuid.UUID) error {
	return r.db.Delete(&models.ContactNote{}, "contact_id = ? AND id = ?", contactID, id).Error
}
