package services_test

import (
	"fmt"
	"testing"
	"time"

	"kontak/internal/apperrors"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, 30*time.Minute)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Test successful registration
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		user.ID = "user-123" // the repository assigns an id on create
	}).Return(nil).Once()

	summary, err := authService.Register("testuser", "test@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", summary.ID)
	assert.Equal(t, "test@example.com", summary.Email)
	mockRepo.AssertExpectations(t)

	// The persisted password must be a bcrypt hash, not the plaintext
	createdUser := mockRepo.Calls[1].Arguments.Get(0).(*models.User)
	assert.NotEqual(t, "password123", createdUser.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.Password), []byte("password123")))

	// Test email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "user-123"}, nil).Once()
	summary, err = authService.Register("testuser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// The token must embed the user's id, username, and email
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	assert.Equal(t, user.Email, claims["email"])

	// Test wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, errWrongPassword := authService.Login(user.Email, "wrongpassword")
	assert.Error(t, errWrongPassword)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(errWrongPassword))
	mockRepo.AssertExpectations(t)

	// Test unknown email
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	_, errUnknownEmail := authService.Login("nobody@example.com", "password123")
	assert.Error(t, errUnknownEmail)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(errUnknownEmail))
	mockRepo.AssertExpectations(t)

	// Both failure modes must report the same generic message
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	signClaims := func(claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, _ := token.SignedString([]byte(testJWTSecret))
		return signed
	}

	// Test valid token
	validToken := signClaims(jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"email":    "test@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	identity, err := authService.ValidateToken(validToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", identity.ID)
	assert.Equal(t, "testuser", identity.Username)
	assert.Equal(t, "test@example.com", identity.Email)

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))

	// Test expired token
	expiredToken := signClaims(jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(expiredToken)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))

	// Test token signed with a different secret
	otherToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	otherSigned, _ := otherToken.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(otherSigned)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))

	// Test token carrying no identity claims
	emptyToken := signClaims(jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(emptyToken)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}
