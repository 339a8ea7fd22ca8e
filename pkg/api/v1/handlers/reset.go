package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/logger"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
)

// ResetHandler handles password recovery
type ResetHandler struct {
	*APIHandler
}

// NewResetHandler creates a new ResetHandler instance
func NewResetHandler(api *APIHandler) *ResetHandler {
	return &ResetHandler{APIHandler: api}
}

// ForgotPassword issues a reset-password token for the given email.
// Always responds 202 so the endpoint cannot be used to probe for accounts.
func (h *ResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var params EmailParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, err := h.user.ForgotPassword(c.Context(), params.Email)
	switch {
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrUserInactive):
		// Silently ignored by design of the endpoint.
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue reset token")
	default:
		logger.InfoWithFields("Reset password token issued", map[string]interface{}{
			"email": params.Email,
			"token": token,
		})
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// ResetPassword redeems a reset token and replaces the account password.
func (h *ResetHandler) ResetPassword(c *fiber.Ctx) error {
	var params ResetPasswordParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err := h.user.ResetPassword(c.Context(), params.Token, params.Password)

	var invalidPassword *auth.InvalidPasswordError
	switch {
	case errors.Is(err, services.ErrInvalidResetToken),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserInactive):
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeResetPasswordBadToken)
	case errors.As(err, &invalidPassword):
		return respondWithDetail(c, fiber.StatusBadRequest,
			codeReason(ErrCodeResetPasswordInvalidPassword, invalidPassword.Reason))
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reset password")
	}

	return c.SendStatus(fiber.StatusOK)
}
