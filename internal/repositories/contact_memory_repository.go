package repositories

import (
	"fmt"
	"sync"
	"time"

	"kontak/internal/models"

	"github.com/google/uuid"
)

// MemoryContactRepository is an in-memory implementation of
// ContactRepository, used when the service runs with DB_DRIVER=memory.
type MemoryContactRepository struct {
	contacts map[string]models.Contact
	mu       sync.RWMutex
}

// NewMemoryContactRepository creates a new instance of MemoryContactRepository.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{
		contacts: make(map[string]models.Contact),
	}
}

// GetAllByUserID returns all contacts owned by the given user.
func (r *MemoryContactRepository) GetAllByUserID(userID string) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contactList := make([]models.Contact, 0)
	for _, contact := range r.contacts {
		if contact.UserID == userID {
			contactList = append(contactList, contact)
		}
	}
	return contactList, nil
}

// GetByID returns a contact by its ID.
func (r *MemoryContactRepository) GetByID(id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}
	return &contact, nil
}

// Create adds a new contact.
func (r *MemoryContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.contacts[contact.ID] = *contact
	return nil
}

// Update modifies an existing contact.
func (r *MemoryContactRepository) Update(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.contacts[contact.ID]
	if !ok {
		return fmt.Errorf("contact with ID %s: %w", contact.ID, ErrNotFound)
	}
	contact.UpdatedAt = time.Now()
	r.contacts[contact.ID] = *contact
	return nil
}

// Delete removes a contact by its ID.
func (r *MemoryContactRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.contacts[id]
	if !ok {
		return fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}
	delete(r.contacts, id)
	return nil
}
