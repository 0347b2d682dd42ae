package handlers

import (
	"log"

	"kontak/internal/apperrors"
	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration, login, and the
// current-user echo.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The
// /current route runs behind the bearer-token middleware.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Get("/current", authRequired, h.HandleCurrent)
}

// RegisterRequest represents the request body for registration. Fields
// are checked for presence only.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
//
//	@Summary	Register a new user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RegisterRequest	true	"registration fields"
//	@Success	201		{object}	models.UserSummary
//	@Failure	400		{object}	apperrors.ErrorResponse
//	@Router		/users/register [post]
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body", err)
	}

	if err := h.validate.Struct(req); err != nil {
		return apperrors.Validation("all fields are mandatory", err)
	}

	summary, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	log.Printf("User registered: %s", summary.Email)
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// HandleLogin handles user login and issues an access token.
//
//	@Summary	Log in a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	400		{object}	apperrors.ErrorResponse
//	@Failure	401		{object}	apperrors.ErrorResponse
//	@Router		/users/login [post]
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body", err)
	}

	if err := h.validate.Struct(req); err != nil {
		return apperrors.Validation("all fields are mandatory", err)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(LoginResponse{AccessToken: token})
}

// HandleCurrent echoes the authenticated caller's identity.
//
//	@Summary	Get the current logged-in user's identity
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	models.UserSummary
//	@Failure	401	{object}	apperrors.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/current [get]
func (h *AuthHandler) HandleCurrent(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}

	return c.JSON(models.UserSummary{
		ID:       identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
	})
}
