package handlers_test

import (
	"net/http"

	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
)

func (s *APITestSuite) TestRegister() {
	resp := s.request(http.MethodPost, "/api/v1/register", handlers.RegisterParams{
		Email:     "new@example.com",
		Password:  testPassword,
		FirstName: "New",
		LastName:  "User",
	}, "")
	s.Equal(http.StatusCreated, resp.StatusCode)

	var user models.User
	s.decode(resp, &user)
	s.NotZero(user.ID)
	s.Equal("new@example.com", user.Email)
	s.False(user.IsVerified)
	s.False(user.IsSuperuser)
}

func (s *APITestSuite) TestRegisterResponseHidesPassword() {
	resp := s.request(http.MethodPost, "/api/v1/register", handlers.RegisterParams{
		Email:     "new@example.com",
		Password:  testPassword,
		FirstName: "New",
		LastName:  "User",
	}, "")
	s.Equal(http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	s.decode(resp, &body)
	s.NotContains(body, "hashed_password")
	s.NotContains(body, "password")
}

func (s *APITestSuite) TestRegisterDuplicateEmail() {
	s.createUser("taken@example.com", false)

	resp := s.request(http.MethodPost, "/api/v1/register", handlers.RegisterParams{
		Email:     "taken@example.com",
		Password:  testPassword,
		FirstName: "New",
		LastName:  "User",
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("REGISTER_USER_ALREADY_EXISTS", s.detail(resp))
}

func (s *APITestSuite) TestRegisterInvalidPassword() {
	resp := s.request(http.MethodPost, "/api/v1/register", handlers.RegisterParams{
		Email:     "new@example.com",
		Password:  "short",
		FirstName: "New",
		LastName:  "User",
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	detail, ok := s.detail(resp).(map[string]interface{})
	s.Require().True(ok, "detail must carry code and reason")
	s.Equal("REGISTER_INVALID_PASSWORD", detail["code"])
	s.Equal("Password length must be between 5 and 20 characters.", detail["reason"])
}

func (s *APITestSuite) TestRegisterValidation() {
	// Missing email
	resp := s.request(http.MethodPost, "/api/v1/register", handlers.RegisterParams{
		Password:  testPassword,
		FirstName: "New",
		LastName:  "User",
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Missing names
	resp = s.request(http.MethodPost, "/api/v1/register", handlers.RegisterParams{
		Email:    "new@example.com",
		Password: testPassword,
	}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
