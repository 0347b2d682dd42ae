package repositories

import (
	"fmt"
	"sync"
	"time"

	"kontak/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository,
// used when the service runs with DB_DRIVER=memory.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns the user with the given email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID returns the user with the given ID.
func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &user, nil
}
