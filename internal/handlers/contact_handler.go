package handlers

import (
	"kontak/internal/apperrors"
	"kontak/internal/middleware"
	"kontak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for the contact CRUD.
type ContactHandler struct {
	contactService *services.ContactService
	validate       *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the contact routes with the Fiber app. Every
// contact route requires a bearer token.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	contactRoutes := router.Group("/contacts", authRequired)
	contactRoutes.Get("/", h.HandleList)
	contactRoutes.Post("/", h.HandleCreate)
	contactRoutes.Get("/:id", h.HandleGet)
	contactRoutes.Put("/:id", h.HandleUpdate)
	contactRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns all contacts owned by the caller.
//
//	@Summary	List the caller's contacts
//	@Tags		contacts
//	@Produce	json
//	@Success	200	{array}		models.Contact
//	@Failure	401	{object}	apperrors.ErrorResponse
//	@Failure	500	{object}	apperrors.ErrorResponse
//	@Security	BearerAuth
//	@Router		/contacts [get]
func (h *ContactHandler) HandleList(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}

	contacts, err := h.contactService.List(identity)
	if err != nil {
		return err
	}

	return c.JSON(contacts)
}

// HandleGet returns a single contact owned by the caller.
//
//	@Summary	Get a single contact by ID
//	@Tags		contacts
//	@Produce	json
//	@Param		id	path		string	true	"contact ID"
//	@Success	200	{object}	models.Contact
//	@Failure	401	{object}	apperrors.ErrorResponse
//	@Failure	403	{object}	apperrors.ErrorResponse
//	@Failure	404	{object}	apperrors.ErrorResponse
//	@Security	BearerAuth
//	@Router		/contacts/{id} [get]
func (h *ContactHandler) HandleGet(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Get(identity, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(contact)
}

// CreateContactRequest represents the request body for creating a contact.
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// HandleCreate creates a new contact owned by the caller.
//
//	@Summary	Create a contact owned by the caller
//	@Tags		contacts
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateContactRequest	true	"contact fields"
//	@Success	201		{object}	models.Contact
//	@Failure	400		{object}	apperrors.ErrorResponse
//	@Failure	401		{object}	apperrors.ErrorResponse
//	@Security	BearerAuth
//	@Router		/contacts [post]
func (h *ContactHandler) HandleCreate(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}

	var req CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body", err)
	}

	if err := h.validate.Struct(req); err != nil {
		return apperrors.Validation("all fields are mandatory", err)
	}

	contact, err := h.contactService.Create(identity, req.Name, req.Email, req.Phone)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// UpdateContactRequest represents the request body for updating a
// contact. Absent fields are left unchanged.
type UpdateContactRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// HandleUpdate applies a partial update to a contact owned by the
// caller and returns the updated record.
//
//	@Summary	Update a contact by ID
//	@Tags		contacts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"contact ID"
//	@Param		request	body		UpdateContactRequest	true	"fields to change"
//	@Success	200		{object}	models.Contact
//	@Failure	401		{object}	apperrors.ErrorResponse
//	@Failure	403		{object}	apperrors.ErrorResponse
//	@Failure	404		{object}	apperrors.ErrorResponse
//	@Security	BearerAuth
//	@Router		/contacts/{id} [put]
func (h *ContactHandler) HandleUpdate(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}

	var req UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body", err)
	}

	contact, err := h.contactService.Update(identity, c.Params("id"), services.ContactUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(contact)
}

// HandleDelete removes a contact owned by the caller and returns the
// deleted record's last known values.
//
//	@Summary	Delete a contact by ID
//	@Tags		contacts
//	@Produce	json
//	@Param		id	path		string	true	"contact ID"
//	@Success	200	{object}	models.Contact
//	@Failure	401	{object}	apperrors.ErrorResponse
//	@Failure	403	{object}	apperrors.ErrorResponse
//	@Failure	404	{object}	apperrors.ErrorResponse
//	@Security	BearerAuth
//	@Router		/contacts/{id} [delete]
func (h *ContactHandler) HandleDelete(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Delete(identity, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(contact)
}
