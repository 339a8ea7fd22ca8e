// Package client provides the API client for the user service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Auth Endpoints
	Login(ctx context.Context, params handlers.LoginParams) (handlers.BearerToken, error)
	Logout(ctx context.Context) error

	// Registration
	Register(ctx context.Context, params handlers.RegisterParams) (models.User, error)

	// Account recovery
	RequestVerifyCode(ctx context.Context, email string) error
	Verify(ctx context.Context, code string) (models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error

	// User Endpoints
	GetCurrentUser(ctx context.Context) (models.User, error)
	UpdateCurrentUser(ctx context.Context, params handlers.UserUpdateParams) (models.User, error)
	GetUsers(ctx context.Context, page int) (handlers.UsersResponse, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, params handlers.UserUpdateParams) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL   string
	timeout   time.Duration
	AuthToken string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (*APIClient, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	_, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	if c.AuthToken != "" {
		agent.Set("Authorization", "Bearer "+c.AuthToken)
	}

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		// If we can't decode the error response, return an error with the raw body as the message
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// Health check implementation

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	endpoint := routes.HealthCheckURL()
	var response map[string]string
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return map[string]string{}, err
	}
	return response, nil
}

// Auth methods implementation

// Login exchanges credentials for a bearer token. On success the token is
// stored on the client and attached to subsequent requests.
func (c *APIClient) Login(ctx context.Context, params handlers.LoginParams) (handlers.BearerToken, error) {
	endpoint := routes.LoginURL()
	var response handlers.BearerToken
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, params, &response); err != nil {
		return handlers.BearerToken{}, err
	}
	c.AuthToken = response.AccessToken
	return response, nil
}

// Logout revokes the client's bearer token
func (c *APIClient) Logout(ctx context.Context) error {
	endpoint := routes.LogoutURL()
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, nil, nil); err != nil {
		return err
	}
	c.AuthToken = ""
	return nil
}

// Registration implementation

// Register creates a new account
func (c *APIClient) Register(ctx context.Context, params handlers.RegisterParams) (models.User, error) {
	endpoint := routes.RegisterURL()
	var response models.User
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, params, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// Account recovery implementation

// RequestVerifyCode requests a verification code for the given email
func (c *APIClient) RequestVerifyCode(ctx context.Context, email string) error {
	endpoint := routes.RequestVerifyCodeURL()
	return c.executeRequest(ctx, http.MethodPost, endpoint, handlers.EmailParams{Email: email}, nil)
}

// Verify redeems a verification code
func (c *APIClient) Verify(ctx context.Context, code string) (models.User, error) {
	endpoint := routes.VerifyURL()
	var response models.User
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, handlers.VerifyParams{Code: code}, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// ForgotPassword requests a password reset token for the given email
func (c *APIClient) ForgotPassword(ctx context.Context, email string) error {
	endpoint := routes.ForgotPasswordURL()
	return c.executeRequest(ctx, http.MethodPost, endpoint, handlers.EmailParams{Email: email}, nil)
}

// ResetPassword redeems a reset token and sets a new password
func (c *APIClient) ResetPassword(ctx context.Context, token, password string) error {
	endpoint := routes.ResetPasswordURL()
	return c.executeRequest(ctx, http.MethodPost, endpoint,
		handlers.ResetPasswordParams{Token: token, Password: password}, nil)
}

// User methods implementation

// GetCurrentUser retrieves the authenticated user
func (c *APIClient) GetCurrentUser(ctx context.Context) (models.User, error) {
	endpoint := routes.GetCurrentUserURL()
	var response models.User
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// UpdateCurrentUser updates the authenticated user
func (c *APIClient) UpdateCurrentUser(ctx context.Context, params handlers.UserUpdateParams) (models.User, error) {
	endpoint := routes.UpdateCurrentUserURL()
	var response models.User
	if err := c.executeRequest(ctx, http.MethodPatch, endpoint, params, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// GetUsers lists users page by page
func (c *APIClient) GetUsers(ctx context.Context, page int) (handlers.UsersResponse, error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", fmt.Sprintf("%d", page))
	}

	endpoint := routes.GetUsersURL(q)
	var response handlers.UsersResponse
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return handlers.UsersResponse{}, err
	}
	return response, nil
}

// GetUser retrieves a user by ID
func (c *APIClient) GetUser(ctx context.Context, id string) (models.User, error) {
	endpoint := routes.GetUserURL(id)
	var response models.User
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// UpdateUser updates a user by ID
func (c *APIClient) UpdateUser(ctx context.Context, id string, params handlers.UserUpdateParams) (models.User, error) {
	endpoint := routes.UpdateUserURL(id)
	var response models.User
	if err := c.executeRequest(ctx, http.MethodPatch, endpoint, params, &response); err != nil {
		return models.User{}, err
	}
	return response, nil
}

// DeleteUser deletes a user by ID
func (c *APIClient) DeleteUser(ctx context.Context, id string) error {
	endpoint := routes.DeleteUserURL(id)
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}
