// Package handlers provides HTTP request handling
package handlers

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
)

// CookieSettings configures the refresh-token cookie issued at login.
type CookieSettings struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

// APIHandler is the shared state of all API handlers
type APIHandler struct {
	user      *services.User
	tokens    *auth.JWTStrategy
	blacklist services.TokenBlacklist
	cookies   CookieSettings
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(user *services.User, tokens *auth.JWTStrategy,
	blacklist services.TokenBlacklist, cookies CookieSettings) *APIHandler {
	return &APIHandler{
		user:      user,
		tokens:    tokens,
		blacklist: blacklist,
		cookies:   cookies,
	}
}

// respondWithDetail mirrors the error payload shape of the API:
// {"detail": <code>} or {"detail": {"code": ..., "reason": ...}}.
func respondWithDetail(c *fiber.Ctx, status int, detail interface{}) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// codeReason is the detail payload for password-policy violations.
func codeReason(code, reason string) fiber.Map {
	return fiber.Map{"code": code, "reason": reason}
}
