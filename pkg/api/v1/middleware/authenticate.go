package middleware

import (
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
)

// Locals keys set by the authenticator.
const (
	localsUserKey     = "current_user"
	localsTokenKey    = "current_token"
	localsTokenExpKey = "current_token_exp"
)

const bearerPrefix = "Bearer "

// Authenticator resolves the current user from the Authorization header.
// Requirements are checked in order: a valid non-blacklisted access token,
// an existing active user, then optionally verified and superuser flags.
type Authenticator struct {
	users     *services.User
	tokens    *auth.JWTStrategy
	blacklist services.TokenBlacklist
}

// NewAuthenticator creates an authenticator over the given dependencies.
func NewAuthenticator(users *services.User, tokens *auth.JWTStrategy, blacklist services.TokenBlacklist) *Authenticator {
	return &Authenticator{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// CurrentUser returns a middleware requiring an authenticated active user.
// With verified set, unverified users get 403.
func (a *Authenticator) CurrentUser(verified bool) fiber.Handler {
	return a.authenticate(verified, false)
}

// CurrentSuperuser returns a middleware requiring a verified superuser.
func (a *Authenticator) CurrentSuperuser() fiber.Handler {
	return a.authenticate(true, true)
}

func (a *Authenticator) authenticate(verified, superuser bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		userID, expiresAt, err := a.tokens.ReadToken(token, auth.AccessToken)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}

		revoked, err := a.blacklist.Contains(c.Context(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check token")
		}
		if revoked {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}

		user, err := a.users.GetByID(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "inactive user")
		}
		if verified && !user.IsVerified {
			return fiber.NewError(fiber.StatusForbidden, "user is not verified")
		}
		if superuser && !user.IsSuperuser {
			return fiber.NewError(fiber.StatusForbidden, "not a superuser")
		}

		c.Locals(localsUserKey, user)
		c.Locals(localsTokenKey, token)
		c.Locals(localsTokenExpKey, expiresAt)
		return c.Next()
	}
}

// UserFromContext returns the user resolved by the authenticator.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

// TokenFromContext returns the bearer token and its expiry.
func TokenFromContext(c *fiber.Ctx) (string, time.Time) {
	token, _ := c.Locals(localsTokenKey).(string)
	exp, _ := c.Locals(localsTokenExpKey).(time.Time)
	return token, exp
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
