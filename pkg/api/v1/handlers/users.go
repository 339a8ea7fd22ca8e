package handlers

import (
	"errors"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/middleware"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	*APIHandler
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(api *APIHandler) *UserHandler {
	return &UserHandler{APIHandler: api}
}

// UsersResponse is the paginated user listing response body.
type UsersResponse struct {
	Users []models.User `json:"users"`
	Page  int           `json:"page"`
	Total int           `json:"total"`
}

// GetCurrentUser returns the authenticated user
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	return c.JSON(middleware.UserFromContext(c))
}

// UpdateCurrentUser applies a safe update to the authenticated user.
// Privilege flags in the request are ignored.
func (h *UserHandler) UpdateCurrentUser(c *fiber.Ctx) error {
	return h.update(c, middleware.UserFromContext(c), true)
}

// GetUsers returns a page of users. Superuser only.
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgNegativePagination)
	}

	opts := getPaginationOptions(page)
	users, err := h.user.List(c.Context(), opts)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, ErrMsgGetUsersFailed)
	}

	return c.JSON(UsersResponse{
		Users: users,
		Page:  page,
		Total: len(users),
	})
}

// GetUser returns a user by id. Superuser only.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUser applies an unsafe update to a user by id. Superuser only.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}
	return h.update(c, user, false)
}

// DeleteUser deletes a user by id. Superuser only.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}

	if err := h.user.Delete(c.Context(), user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, ErrMsgDeleteUserFailed)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// userFromParam resolves the :id route parameter. Malformed ids and missing
// users both surface as 404, so the endpoint does not leak id validity.
func (h *UserHandler) userFromParam(c *fiber.Ctx) (*models.User, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, fiber.ErrNotFound
	}

	user, err := h.user.GetByID(c.Context(), uint(id))
	if errors.Is(err, services.ErrUserNotFound) {
		return nil, fiber.ErrNotFound
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, ErrMsgGetUsersFailed)
	}
	return user, nil
}

func (h *UserHandler) update(c *fiber.Ctx, user *models.User, safe bool) error {
	var params UserUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updated, err := h.user.Update(c.Context(), user, services.UserUpdate{
		Email:       params.Email,
		Password:    params.Password,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		IsActive:    params.IsActive,
		IsSuperuser: params.IsSuperuser,
		IsVerified:  params.IsVerified,
	}, safe)

	var invalidPassword *auth.InvalidPasswordError
	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeUpdateUserEmailAlreadyExists)
	case errors.As(err, &invalidPassword):
		return respondWithDetail(c, fiber.StatusBadRequest,
			codeReason(ErrCodeUpdateUserInvalidPassword, invalidPassword.Reason))
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, ErrMsgUpdateUserFailed)
	}

	return c.JSON(updated)
}
