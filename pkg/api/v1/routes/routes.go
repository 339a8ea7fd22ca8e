// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/middleware"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8000"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Auth routes
	Login   = "Login"
	Logout  = "Logout"
	Refresh = "Refresh"

	// Registration and account recovery
	Register          = "Register"
	RequestVerifyCode = "RequestVerifyCode"
	Verify            = "Verify"
	ForgotPassword    = "ForgotPassword"
	ResetPassword     = "ResetPassword"

	// User routes
	GetCurrentUser    = "GetCurrentUser"
	UpdateCurrentUser = "UpdateCurrentUser"
	GetUsers          = "GetUsers"
	GetUser           = "GetUser"
	UpdateUser        = "UpdateUser"
	DeleteUser        = "DeleteUser"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the
// order they are registered. The /users/me routes must be registered before
// /users/:id, otherwise "me" gets interpreted as a user id.
func RegisterRoutes(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	registerHandler *handlers.RegisterHandler,
	verifyHandler *handlers.VerifyHandler,
	resetHandler *handlers.ResetHandler,
	userHandler *handlers.UserHandler,
	authn *middleware.Authenticator,
) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Auth endpoints
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login).Name(Login)
	auth.Post("/logout", authn.CurrentUser(true), authHandler.Logout).Name(Logout)
	auth.Post("/refresh", authHandler.Refresh).Name(Refresh)

	// Registration
	v1.Post("/register", registerHandler.Register).Name(Register)

	// Verification endpoints
	verify := v1.Group("/verify")
	verify.Post("/request-verify-code", verifyHandler.RequestVerifyCode).Name(RequestVerifyCode)
	verify.Post("/verify", verifyHandler.Verify).Name(Verify)

	// Password recovery endpoints
	reset := v1.Group("/reset-password")
	reset.Post("/forgot-password", resetHandler.ForgotPassword).Name(ForgotPassword)
	reset.Post("/reset-password", resetHandler.ResetPassword).Name(ResetPassword)

	// ---------------------------
	// User endpoints
	users := v1.Group("/users")
	users.Get("/me", authn.CurrentUser(true), userHandler.GetCurrentUser).Name(GetCurrentUser)
	users.Patch("/me", authn.CurrentUser(true), userHandler.UpdateCurrentUser).Name(UpdateCurrentUser)
	users.Get("/", authn.CurrentSuperuser(), userHandler.GetUsers).Name(GetUsers)
	users.Get("/:id", authn.CurrentSuperuser(), userHandler.GetUser).Name(GetUser)
	users.Patch("/:id", authn.CurrentSuperuser(), userHandler.UpdateUser).Name(UpdateUser)
	users.Delete("/:id", authn.CurrentSuperuser(), userHandler.DeleteUser).Name(DeleteUser)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		routeCache = make(map[string]string)

		// Create a mock app
		app := fiber.New()

		// Create empty handlers for route registration
		api := &handlers.APIHandler{}
		RegisterRoutes(app,
			handlers.NewAuthHandler(api),
			handlers.NewRegisterHandler(api),
			handlers.NewVerifyHandler(api),
			handlers.NewResetHandler(api),
			handlers.NewUserHandler(api),
			&middleware.Authenticator{},
		)

		// Extract routes from the app
		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				routeCache[route.Name] = route.Path
			}
		}
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()

	// Initialize cache if needed
	if routeCache == nil {
		routeCacheMu.RUnlock()
		initRouteCache()
		routeCacheMu.RLock()
	}

	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	// Replace parameters in the route
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	// Add query parameters if any
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// Health check route helper

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// Auth route helpers

// LoginURL returns the URL for the login endpoint
func LoginURL() string {
	return BuildURL(Login, nil, nil)
}

// LogoutURL returns the URL for the logout endpoint
func LogoutURL() string {
	return BuildURL(Logout, nil, nil)
}

// RefreshURL returns the URL for the token refresh endpoint
func RefreshURL() string {
	return BuildURL(Refresh, nil, nil)
}

// Registration and recovery route helpers

// RegisterURL returns the URL for the registration endpoint
func RegisterURL() string {
	return BuildURL(Register, nil, nil)
}

// RequestVerifyCodeURL returns the URL for requesting a verification code
func RequestVerifyCodeURL() string {
	return BuildURL(RequestVerifyCode, nil, nil)
}

// VerifyURL returns the URL for the verification endpoint
func VerifyURL() string {
	return BuildURL(Verify, nil, nil)
}

// ForgotPasswordURL returns the URL for the forgot-password endpoint
func ForgotPasswordURL() string {
	return BuildURL(ForgotPassword, nil, nil)
}

// ResetPasswordURL returns the URL for the reset-password endpoint
func ResetPasswordURL() string {
	return BuildURL(ResetPassword, nil, nil)
}

// User route helpers

// GetCurrentUserURL returns the URL for the current-user endpoint
func GetCurrentUserURL() string {
	return BuildURL(GetCurrentUser, nil, nil)
}

// UpdateCurrentUserURL returns the URL for updating the current user
func UpdateCurrentUserURL() string {
	return BuildURL(UpdateCurrentUser, nil, nil)
}

// GetUsersURL returns the URL for listing users
func GetUsersURL(queryParams url.Values) string {
	return BuildURL(GetUsers, nil, queryParams)
}

// GetUserURL returns the URL for getting a user by ID
func GetUserURL(id string) string {
	return BuildURL(GetUser, map[string]string{"id": id}, nil)
}

// UpdateUserURL returns the URL for updating a user by ID
func UpdateUserURL(id string) string {
	return BuildURL(UpdateUser, map[string]string{"id": id}, nil)
}

// DeleteUserURL returns the URL for deleting a user by ID
func DeleteUserURL(id string) string {
	return BuildURL(DeleteUser, map[string]string{"id": id}, nil)
}
