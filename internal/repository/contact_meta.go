package repository

import (
	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMetaRepository handles database operations for contact meta entries
type ContactMetaRepository struct {
	db *gorm.DB
}

// NewContactMetaRepository creates a new contact meta repository
func NewContactMetaRepository(db *gorm.DB) *ContactMetaRepository {
	return &ContactMetaRepository{db: db}
}

// Create creates a new meta entry
func (r *ContactMetaRepository) Create(meta *models.ContactMeta) error {
	return r.db.Create(meta).Error
}

// GetByID retrieves a meta entry by ID within the given contact
func (r *ContactMetaRepository) GetByID(contactID, id uuid.UUID) (*models.ContactMeta, error) {
	var meta models.ContactMeta
	err := r.db.First(&meta, "contact_id = ? AND id = ?", contactID, id).Error
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListByContact retrieves the contact's meta entries ordered by key
func (r *ContactMetaRepository) ListByContact(contactID uuid.UUID) ([]models.ContactMeta, error) {
	var entries []models.ContactMeta
	err := r.db.
		Where("contact_id = ?", contactID).
		Order("key ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByContact returns the number of meta entries on the contact
func (r *ContactMetaRepository) CountByContact(contactID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactMeta{}).
		Where("contact_id = ?", contactID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceForContact swaps the contact's meta set for the given pairs in a
// single transaction
func (r *ContactMetaRepository) ReplaceForContact(contactID uuid.UUID, pairs []models.ContactMeta) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ContactMeta{}, "contact_id = ?", contactID).Error; err != nil {
			return err
		}
		for i := range pairs {
			pairs[i].ContactID = contactID
			if err := tx.Create(&pairs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update updates a meta entry
func (r *ContactMetaRepository) Update(meta *models.ContactMeta) error {
	return r.db.Save(meta).Error
}

// Delete deletes a meta entry
func (r *ContactMetaRepository) Delete(contactID, id uuid.UUID) error {
	return r.db.Delete(&models.ContactMeta{}, "contact_id = ? AND id = ?", contactID, id).Error
}
