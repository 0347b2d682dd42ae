package repositories

import "kontak/internal/models"

// ContactRepository defines the interface for contact data access.
// Listing is always scoped to an owning user id; single-record lookups
// are by contact id so the service layer can tell "not found" apart
// from "found but owned by someone else".
type ContactRepository interface {
	GetAllByUserID(userID string) ([]models.Contact, error)
	GetByID(id string) (*models.Contact, error)
	Create(contact *models.Contact) error
	Update(contact *models.Contact) error
	Delete(id string) error
}
