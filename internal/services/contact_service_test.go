package services_test

import (
	"fmt"
	"testing"

	"kontak/internal/apperrors"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of repositories.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) GetAllByUserID(userID string) ([]models.Contact, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contact), args.Error(1)
}

func (m *MockContactRepository) GetByID(id string) (*models.Contact, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) Create(contact *models.Contact) error {
	args := m.Called(contact)
	return args.Error(0)
}

func (m *MockContactRepository) Update(contact *models.Contact) error {
	args := m.Called(contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var (
	owner    = services.Identity{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	intruder = services.Identity{ID: "user-2", Username: "mallory", Email: "mallory@example.com"}
)

func notFoundErr(id string) error {
	return fmt.Errorf("contact with ID %s: %w", id, repositories.ErrNotFound)
}

func TestContactService_List(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil)

	expected := []models.Contact{
		{ID: "c-1", UserID: owner.ID, Name: "Bob", Email: "bob@example.com", Phone: "1"},
		{ID: "c-2", UserID: owner.ID, Name: "Carol", Email: "carol@example.com", Phone: "2"},
	}

	// The listing is always scoped to the caller's own user id
	mockRepo.On("GetAllByUserID", owner.ID).Return(expected, nil).Once()

	contacts, err := service.List(owner)
	assert.NoError(t, err)
	assert.Equal(t, expected, contacts)
	mockRepo.AssertExpectations(t)
}

func TestContactService_Get(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil)

	contact := &models.Contact{ID: "c-1", UserID: owner.ID, Name: "Bob"}

	// Test retrieval by the owner
	mockRepo.On("GetByID", "c-1").Return(contact, nil).Once()
	got, err := service.Get(owner, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, contact, got)
	mockRepo.AssertExpectations(t)

	// Test retrieval by a different user: found but not yours is 403
	mockRepo.On("GetByID", "c-1").Return(contact, nil).Once()
	_, err = service.Get(intruder, "c-1")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)

	// Test missing contact: 404, regardless of the caller
	mockRepo.On("GetByID", "c-99").Return(nil, notFoundErr("c-99")).Once()
	_, err = service.Get(owner, "c-99")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestContactService_Create(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Contact")).Return(nil).Once()

	contact, err := service.Create(owner, "Bob", "bob@example.com", "1234")
	assert.NoError(t, err)
	// The owner id is stamped from the identity, not from the request
	assert.Equal(t, owner.ID, contact.UserID)
	assert.Equal(t, "Bob", contact.Name)
	assert.Equal(t, "bob@example.com", contact.Email)
	assert.Equal(t, "1234", contact.Phone)
	mockRepo.AssertExpectations(t)
}

func TestContactService_Update(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil)

	name := "Bobby"

	// Test partial update: only the name changes, other fields survive
	existing := &models.Contact{ID: "c-1", UserID: owner.ID, Name: "Bob", Email: "bob@example.com", Phone: "1234"}
	mockRepo.On("GetByID", "c-1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Contact")).Return(nil).Once()

	updated, err := service.Update(owner, "c-1", services.ContactUpdate{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Bobby", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Equal(t, "1234", updated.Phone)
	mockRepo.AssertExpectations(t)

	// Test update of someone else's contact
	existing = &models.Contact{ID: "c-1", UserID: owner.ID, Name: "Bob"}
	mockRepo.On("GetByID", "c-1").Return(existing, nil).Once()
	_, err = service.Update(intruder, "c-1", services.ContactUpdate{Name: &name})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)

	// Test update of a missing contact
	mockRepo.On("GetByID", "c-99").Return(nil, notFoundErr("c-99")).Once()
	_, err = service.Update(owner, "c-99", services.ContactUpdate{Name: &name})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestContactService_Delete(t *testing.T) {
	mockRepo := new(MockContactRepository)
	service := services.NewContactService(mockRepo, nil)

	contact := &models.Contact{ID: "c-1", UserID: owner.ID, Name: "Bob", Email: "bob@example.com", Phone: "1234"}

	// Test deletion by the owner returns the record's last values
	mockRepo.On("GetByID", "c-1").Return(contact, nil).Once()
	mockRepo.On("Delete", "c-1").Return(nil).Once()
	deleted, err := service.Delete(owner, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, contact, deleted)
	mockRepo.AssertExpectations(t)

	// Test deletion by a different user: no Delete call reaches the repo
	mockRepo.On("GetByID", "c-1").Return(contact, nil).Once()
	_, err = service.Delete(intruder, "c-1")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)

	// Test deletion of a missing contact
	mockRepo.On("GetByID", "c-99").Return(nil, notFoundErr("c-99")).Once()
	_, err = service.Delete(owner, "c-99")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}
