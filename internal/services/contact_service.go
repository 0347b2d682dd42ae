package services

import (
	"errors"
	"fmt"
	"log"

	"kontak/internal/apperrors"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/pkg/rabbitmq"
)

// ContactUpdate carries the fields of a partial contact update. Nil
// fields are left untouched.
type ContactUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// ContactService handles the ownership-scoped contact CRUD. Every
// operation takes the caller's Identity explicitly; a contact is only
// ever visible to the user whose id it was stamped with at creation.
type ContactService struct {
	contactRepo repositories.ContactRepository
	mqClient    *rabbitmq.Client
}

// NewContactService creates a new ContactService. mqClient may be nil,
// in which case lifecycle events are skipped.
func NewContactService(contactRepo repositories.ContactRepository, mqClient *rabbitmq.Client) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		mqClient:    mqClient,
	}
}

// List returns all contacts owned by the caller.
func (s *ContactService) List(identity Identity) ([]models.Contact, error) {
	contacts, err := s.contactRepo.GetAllByUserID(identity.ID)
	if err != nil {
		return nil, apperrors.Internal("could not retrieve contacts", err)
	}
	return contacts, nil
}

// Get returns a single contact. The existence check runs before the
// ownership check so a missing id reports 404 while someone else's
// contact reports 403.
func (s *ContactService) Get(identity Identity, contactID string) (*models.Contact, error) {
	return s.getOwned(identity, contactID)
}

// Create stamps the caller's id onto the new contact and persists it.
func (s *ContactService) Create(identity Identity, name, email, phone string) (*models.Contact, error) {
	contact := &models.Contact{
		UserID: identity.ID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, apperrors.Internal("could not create contact", err)
	}

	s.publishEvent("contact.created", contact)
	return contact, nil
}

// Update applies the non-nil fields of upd to the caller's contact and
// returns the updated record.
func (s *ContactService) Update(identity Identity, contactID string, upd ContactUpdate) (*models.Contact, error) {
	contact, err := s.getOwned(identity, contactID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		contact.Name = *upd.Name
	}
	if upd.Email != nil {
		contact.Email = *upd.Email
	}
	if upd.Phone != nil {
		contact.Phone = *upd.Phone
	}

	if err := s.contactRepo.Update(contact); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("contact with id %s not found", contactID), err)
		}
		return nil, apperrors.Internal("could not update contact", err)
	}

	return contact, nil
}

// Delete removes the caller's contact and returns its last known values
// so the client can confirm what was deleted.
func (s *ContactService) Delete(identity Identity, contactID string) (*models.Contact, error) {
	contact, err := s.getOwned(identity, contactID)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Delete(contactID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("contact with id %s not found", contactID), err)
		}
		return nil, apperrors.Internal("could not delete contact", err)
	}

	s.publishEvent("contact.deleted", contact)
	return contact, nil
}

// getOwned fetches a contact and enforces ownership, in that order.
func (s *ContactService) getOwned(identity Identity, contactID string) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("contact with id %s not found", contactID), err)
		}
		return nil, apperrors.Internal("could not retrieve contact", err)
	}

	if contact.UserID != identity.ID {
		return nil, apperrors.Forbidden("you do not have permission to access this contact")
	}

	return contact, nil
}

// publishEvent emits a contact lifecycle event. Publishing is best
// effort: a missing client or a broker failure is logged and never
// fails the request.
func (s *ContactService) publishEvent(eventType string, contact *models.Contact) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishContactEvent(eventType, contact); err != nil {
		log.Printf("Warning: failed to publish %s event for contact %s: %v", eventType, contact.ID, err)
	}
}
