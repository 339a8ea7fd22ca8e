package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
)

// RegisterHandler handles account registration
type RegisterHandler struct {
	*APIHandler
}

// NewRegisterHandler creates a new RegisterHandler instance
func NewRegisterHandler(api *APIHandler) *RegisterHandler {
	return &RegisterHandler{APIHandler: api}
}

// Register creates a new account. Privilege flags in the request body are
// ignored; new accounts always start inactive-free and unverified.
func (h *RegisterHandler) Register(c *fiber.Ctx) error {
	var params RegisterParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user := &models.User{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	}

	created, err := h.user.Register(c.Context(), user, params.Password)

	var invalidPassword *auth.InvalidPasswordError
	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeRegisterUserAlreadyExists)
	case errors.As(err, &invalidPassword):
		return respondWithDetail(c, fiber.StatusBadRequest,
			codeReason(ErrCodeRegisterInvalidPassword, invalidPassword.Reason))
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to register user")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
