package repositories

import (
	"errors"
	"fmt"

	"kontak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// GetAllByUserID retrieves all contacts owned by the given user.
func (r *GORMContactRepository) GetAllByUserID(userID string) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	if err := r.db.Find(&contacts, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get contacts for user %s: %w", userID, err)
	}
	return contacts, nil
}

// GetByID retrieves a single contact by its ID from the database.
func (r *GORMContactRepository) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}

// Create creates a new contact in the database.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Update updates an existing contact in the database.
func (r *GORMContactRepository) Update(contact *models.Contact) error {
	res := r.db.Save(contact) // Save writes all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not surface ErrRecordNotFound for a missing row,
		// so check RowsAffected instead.
		return fmt.Errorf("contact with ID %s: %w", contact.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a contact by its ID from the database.
func (r *GORMContactRepository) Delete(id string) error {
	res := r.db.Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
