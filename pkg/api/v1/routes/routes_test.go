package routes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"health check", "/health", HealthCheckURL()},
		{"login", "/api/v1/auth/login", LoginURL()},
		{"logout", "/api/v1/auth/logout", LogoutURL()},
		{"refresh", "/api/v1/auth/refresh", RefreshURL()},
		{"register", "/api/v1/register", RegisterURL()},
		{"request verify code", "/api/v1/verify/request-verify-code", RequestVerifyCodeURL()},
		{"verify", "/api/v1/verify/verify", VerifyURL()},
		{"forgot password", "/api/v1/reset-password/forgot-password", ForgotPasswordURL()},
		{"reset password", "/api/v1/reset-password/reset-password", ResetPasswordURL()},
		{"current user", "/api/v1/users/me", GetCurrentUserURL()},
		{"update current user", "/api/v1/users/me", UpdateCurrentUserURL()},
		{"list users", "/api/v1/users", GetUsersURL(nil)},
		{"get user", "/api/v1/users/42", GetUserURL("42")},
		{"update user", "/api/v1/users/42", UpdateUserURL("42")},
		{"delete user", "/api/v1/users/42", DeleteUserURL("42")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
}

func TestBuildURLWithQueryParams(t *testing.T) {
	q := url.Values{}
	q.Set("page", "3")
	assert.Equal(t, "/api/v1/users?page=3", GetUsersURL(q))
}

func TestBuildURLUnknownRoute(t *testing.T) {
	assert.Empty(t, BuildURL("NoSuchRoute", nil, nil))
}
