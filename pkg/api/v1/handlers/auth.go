package handlers

import (
	"errors"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/logger"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/middleware"
)

// RefreshTokenCookie is the name of the cookie carrying the refresh token.
const RefreshTokenCookie = "refresh_token"

// BearerToken is the login/refresh response body.
type BearerToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthHandler handles login, logout and token refresh
type AuthHandler struct {
	*APIHandler
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(api *APIHandler) *AuthHandler {
	return &AuthHandler{APIHandler: api}
}

// Login authenticates a user and issues an access token plus a refresh
// cookie. Bad credentials and inactive users are indistinguishable in the
// response.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var params LoginParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.user.Authenticate(c.Context(), params.Email, params.Password)
	if errors.Is(err, services.ErrBadCredentials) {
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeLoginBadCredentials)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to authenticate")
	}
	if !user.IsActive {
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeLoginBadCredentials)
	}
	if !user.IsVerified {
		return respondWithDetail(c, fiber.StatusBadRequest, ErrCodeLoginUserNotVerified)
	}

	accessToken, err := h.tokens.WriteToken(user, auth.AccessToken)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}
	refreshToken, err := h.tokens.WriteToken(user, auth.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	h.setRefreshCookie(c, refreshToken)
	return c.JSON(BearerToken{AccessToken: accessToken, TokenType: "bearer"})
}

// Logout revokes the current access token for its remaining lifetime and
// clears the refresh cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	token, expiresAt := middleware.TokenFromContext(c)

	if err := h.blacklist.Add(c.Context(), token, user.ID, time.Until(expiresAt)); err != nil {
		logger.Errorf("failed to blacklist token for user %d: %v", user.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to log out")
	}

	h.clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh exchanges a valid refresh cookie for a fresh access token and
// rotates the refresh cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(RefreshTokenCookie)
	if refreshToken == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing refresh token")
	}

	userID, _, err := h.tokens.ReadToken(refreshToken, auth.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	revoked, err := h.blacklist.Contains(c.Context(), refreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check token")
	}
	if revoked {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	user, err := h.user.GetByID(c.Context(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}
	if !user.IsActive || !user.IsVerified {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	accessToken, err := h.tokens.WriteToken(user, auth.AccessToken)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}
	rotated, err := h.tokens.WriteToken(user, auth.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	h.setRefreshCookie(c, rotated)
	return c.JSON(BearerToken{AccessToken: accessToken, TokenType: "bearer"})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   int(h.cookies.MaxAge.Seconds()),
		Secure:   h.cookies.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   -1,
		Secure:   h.cookies.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
