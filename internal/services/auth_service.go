package services

import (
	"errors"
	"fmt"
	"time"

	"kontak/internal/apperrors"
	"kontak/internal/models"
	"kontak/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller extracted from a verified token.
// It is reconstructed on every request and never persisted.
type Identity struct {
	ID       string
	Username string
	Email    string
}

// AuthService handles registration, login, and token verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. tokenTTL bounds the lifetime
// of issued access tokens.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register hashes the password and persists a new user. The returned
// summary carries only the id and email; the hash never leaves the
// service.
func (s *AuthService) Register(username, email, password string) (*models.UserSummary, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, apperrors.Conflict(fmt.Sprintf("user with email %s is already registered", email))
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Internal("could not check existing users", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.Internal("failed to register user", err)
	}

	return &models.UserSummary{ID: user.ID, Email: user.Email}, nil
}

// Login verifies the credentials and issues a signed access token. Both
// an unknown email and a wrong password report the same generic message
// so the response does not reveal which part was wrong.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", apperrors.Auth("invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Auth("invalid email or password", nil)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of a token and returns
// the identity embedded in its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.Auth("invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Auth("invalid or expired token", nil)
	}

	identity := &Identity{}
	if id, ok := claims["user_id"].(string); ok {
		identity.ID = id
	}
	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if identity.ID == "" {
		return nil, apperrors.Auth("token carries no identity", nil)
	}

	return identity, nil
}
