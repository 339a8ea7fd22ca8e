package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/logger"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
)

// VerifyHandler handles e-mail verification
type VerifyHandler struct {
	*APIHandler
}

// NewVerifyHandler creates a new VerifyHandler instance
func NewVerifyHandler(api *APIHandler) *VerifyHandler {
	return &VerifyHandler{APIHandler: api}
}

// RequestVerifyCode issues a verification code for the given email.
// Always responds 202 so the endpoint cannot be used to probe for accounts.
func (h *VerifyHandler) RequestVerifyCode(c *fiber.Ctx) error {
	var params EmailParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	code, err := h.user.RequestVerification(c.Context(), params.Email)
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserInactive),
		errors.Is(err, services.ErrUserAlreadyVerified):
		// Silently ignored by design of the endpoint.
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue verification code")
	default:
		// Mail delivery lives outside this service; the code is logged for
		// the dispatching side to pick up.
		logger.InfoWithFields("Verification code issued", map[string]interface{}{
			"email": params.Email,
			"code":  code,
		})
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// Verify redeems a verification code and returns the verified user.
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	var params VerifyParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.user.Verify(c.Context(), params.Code)
	switch {
	case errors.Is(err, services.ErrInvalidVerificationCode), errors.Is(err, services.ErrUserNotFound):
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeVerifyUserBadCode)
	case errors.Is(err, services.ErrUserAlreadyVerified):
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeVerifyUserAlreadyVerified)
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to verify user")
	}

	return c.JSON(user)
}
