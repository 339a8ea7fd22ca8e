package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
)

func (s *APITestSuite) TestUpdateCurrentUser() {
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	newFirst := "Renamed"
	resp := s.request(http.MethodPatch, "/api/v1/users/me",
		handlers.UserUpdateParams{FirstName: &newFirst}, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated models.User
	s.decode(resp, &updated)
	s.Equal("Renamed", updated.FirstName)
}

func (s *APITestSuite) TestUpdateCurrentUserIgnoresPrivilegeFlags() {
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	yes := true
	resp := s.request(http.MethodPatch, "/api/v1/users/me",
		handlers.UserUpdateParams{IsSuperuser: &yes}, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated models.User
	s.decode(resp, &updated)
	s.False(updated.IsSuperuser)
}

func (s *APITestSuite) TestUpdateCurrentUserTakenEmail() {
	s.createUser("taken@example.com", false)
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	taken := "taken@example.com"
	resp := s.request(http.MethodPatch, "/api/v1/users/me",
		handlers.UserUpdateParams{Email: &taken}, token)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("UPDATE_USER_EMAIL_ALREADY_EXISTS", s.detail(resp))
}

func (s *APITestSuite) TestUpdateCurrentUserInvalidPassword() {
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	weak := "weak"
	resp := s.request(http.MethodPatch, "/api/v1/users/me",
		handlers.UserUpdateParams{Password: &weak}, token)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	detail, ok := s.detail(resp).(map[string]interface{})
	s.Require().True(ok, "detail must carry code and reason")
	s.Equal("UPDATE_USER_INVALID_PASSWORD", detail["code"])
}

func (s *APITestSuite) TestGetUsersRequiresSuperuser() {
	s.createUser("test@example.com", true)
	token, _ := s.login("test@example.com")

	resp := s.request(http.MethodGet, "/api/v1/users", nil, token)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *APITestSuite) TestGetUsers() {
	s.createSuperuser("admin@example.com")
	s.createUser("first@example.com", false)
	s.createUser("second@example.com", false)
	token, _ := s.login("admin@example.com")

	resp := s.request(http.MethodGet, "/api/v1/users", nil, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body handlers.UsersResponse
	s.decode(resp, &body)
	s.Equal(1, body.Page)
	s.Len(body.Users, 3)

	// Out-of-range pages are empty, not errors
	resp = s.request(http.MethodGet, "/api/v1/users?page=2", nil, token)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &body)
	s.Empty(body.Users)

	// Negative pages are rejected
	resp = s.request(http.MethodGet, "/api/v1/users?page=-1", nil, token)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APITestSuite) TestGetUser() {
	s.createSuperuser("admin@example.com")
	other := s.createUser("other@example.com", false)
	token, _ := s.login("admin@example.com")

	resp := s.request(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", other.ID), nil, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var found models.User
	s.decode(resp, &found)
	s.Equal(other.Email, found.Email)

	// Unknown and malformed ids both come back as 404
	resp = s.request(http.MethodGet, "/api/v1/users/9999", nil, token)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/v1/users/not-a-number", nil, token)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APITestSuite) TestUpdateUserAppliesPrivilegeFlags() {
	s.createSuperuser("admin@example.com")
	other := s.createUser("other@example.com", false)
	token, _ := s.login("admin@example.com")

	yes := true
	resp := s.request(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", other.ID),
		handlers.UserUpdateParams{IsVerified: &yes, IsSuperuser: &yes}, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated models.User
	s.decode(resp, &updated)
	s.True(updated.IsVerified)
	s.True(updated.IsSuperuser)
}

func (s *APITestSuite) TestDeleteUser() {
	s.createSuperuser("admin@example.com")
	other := s.createUser("other@example.com", false)
	token, _ := s.login("admin@example.com")

	resp := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", other.ID), nil, token)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.request(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", other.ID), nil, token)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APITestSuite) TestUserEndpointsRequireSuperuser() {
	s.createUser("test@example.com", true)
	other := s.createUser("other@example.com", false)
	token, _ := s.login("test@example.com")

	resp := s.request(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", other.ID), nil, token)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", other.ID), nil, token)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *APITestSuite) TestHealthCheck() {
	resp := s.request(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decode(resp, &body)
	s.Equal("healthy", body["status"])
}
