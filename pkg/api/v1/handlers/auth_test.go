package handlers_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
)

func (s *APITestSuite) TestLogin() {
	s.createUser("test@example.com", true)

	token, refresh := s.login("test@example.com")
	s.NotEmpty(token)
	s.True(refresh.HttpOnly)
	s.Equal("/", refresh.Path)

	// The access token works against a protected endpoint
	resp := s.request(http.MethodGet, "/api/v1/users/me", nil, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var me models.User
	s.decode(resp, &me)
	s.Equal("test@example.com", me.Email)
}

func (s *APITestSuite) TestLoginBadCredentials() {
	s.createUser("test@example.com", true)

	resp := s.request(http.MethodPost, "/api/v1/auth/login", handlers.LoginParams{
		Email:    "test@example.com",
		Password: "Wrong1!",
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("LOGIN_BAD_CREDENTIALS", s.detail(resp))

	// Unknown email gets the same answer
	resp = s.request(http.MethodPost, "/api/v1/auth/login", handlers.LoginParams{
		Email:    "nobody@example.com",
		Password: testPassword,
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("LOGIN_BAD_CREDENTIALS", s.detail(resp))
}

func (s *APITestSuite) TestLoginInactiveUser() {
	user := s.createUser("test@example.com", true)
	user.IsActive = false
	s.Require().NoError(s.db.Save(user).Error)

	resp := s.request(http.MethodPost, "/api/v1/auth/login", handlers.LoginParams{
		Email:    "test@example.com",
		Password: testPassword,
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("LOGIN_BAD_CREDENTIALS", s.detail(resp))
}

func (s *APITestSuite) TestLoginUnverifiedUser() {
	s.createUser("test@example.com", false)

	resp := s.request(http.MethodPost, "/api/v1/auth/login", handlers.LoginParams{
		Email:    "test@example.com",
		Password: testPassword,
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("LOGIN_USER_NOT_VERIFIED", s.detail(resp))
}

func (s *APITestSuite) TestLoginRejectsMalformedBody() {
	resp := s.request(http.MethodPost, "/api/v1/auth/login", handlers.LoginParams{
		Email: "not-an-email",
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APITestSuite) TestLogout() {
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	resp := s.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	// The refresh cookie is cleared
	var cleared bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == handlers.RefreshTokenCookie && cookie.Value == "" {
			cleared = true
		}
	}
	s.True(cleared, "logout must clear the refresh cookie")

	// The revoked token no longer works
	resp = s.request(http.MethodGet, "/api/v1/users/me", nil, token)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestLogoutRequiresAuthentication() {
	resp := s.request(http.MethodPost, "/api/v1/auth/logout", nil, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestRefresh() {
	s.createUser("test@example.com", true)
	_, refresh := s.login("test@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refresh)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var token handlers.BearerToken
	s.decode(resp, &token)
	s.NotEmpty(token.AccessToken)

	// The rotated cookie is present
	var rotated *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == handlers.RefreshTokenCookie {
			rotated = cookie
		}
	}
	s.Require().NotNil(rotated)
	s.NotEmpty(rotated.Value)

	// And the new access token works
	resp = s.request(http.MethodGet, "/api/v1/users/me", nil, token.AccessToken)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *APITestSuite) TestRefreshRejectsMissingCookie() {
	resp := s.request(http.MethodPost, "/api/v1/auth/refresh", nil, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestRefreshRejectsAccessToken() {
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	// An access token in the refresh cookie must be refused
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: token})
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestAuthenticationRejectsRefreshTokenAsBearer() {
	s.createUser("test@example.com", true)
	_, refresh := s.login("test@example.com")

	resp := s.request(http.MethodGet, "/api/v1/users/me", nil, refresh.Value)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestAuthenticationRejectsGarbageToken() {
	resp := s.request(http.MethodGet, "/api/v1/users/me", nil, "not-a-token")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/v1/users/me", nil, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestAuthenticationRejectsUnverifiedUser() {
	user := s.createUser("test@example.com", false)

	// Issue a token directly; login would refuse the account
	token, err := s.tokens.WriteToken(user, auth.AccessToken)
	s.Require().NoError(err)

	resp := s.request(http.MethodGet, "/api/v1/users/me", nil, token)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}
