package handlers_test

import (
	"net/http"

	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
)

func (s *APITestSuite) TestForgotPassword() {
	s.createUser("test@example.com", true)

	resp := s.request(http.MethodPost, "/api/v1/reset-password/forgot-password",
		handlers.EmailParams{Email: "test@example.com"}, "")
	s.Equal(http.StatusAccepted, resp.StatusCode)

	// Unknown accounts get the same answer
	resp = s.request(http.MethodPost, "/api/v1/reset-password/forgot-password",
		handlers.EmailParams{Email: "nobody@example.com"}, "")
	s.Equal(http.StatusAccepted, resp.StatusCode)
}

func (s *APITestSuite) TestResetPassword() {
	user := s.createUser("test@example.com", true)

	token, err := s.service.ForgotPassword(s.ctx, user.Email)
	s.Require().NoError(err)

	resp := s.request(http.MethodPost, "/api/v1/reset-password/reset-password",
		handlers.ResetPasswordParams{Token: token, Password: "Xyz98!"}, "")
	s.Equal(http.StatusOK, resp.StatusCode)

	// The new password logs in
	loginResp := s.request(http.MethodPost, "/api/v1/auth/login", handlers.LoginParams{
		Email:    "test@example.com",
		Password: "Xyz98!",
	}, "")
	s.Equal(http.StatusOK, loginResp.StatusCode)

	// The token is single-use
	resp = s.request(http.MethodPost, "/api/v1/reset-password/reset-password",
		handlers.ResetPasswordParams{Token: token, Password: "Other1!"}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("RESET_PASSWORD_BAD_TOKEN", s.detail(resp))
}

func (s *APITestSuite) TestResetPasswordBadToken() {
	resp := s.request(http.MethodPost, "/api/v1/reset-password/reset-password",
		handlers.ResetPasswordParams{Token: "bogus", Password: "Xyz98!"}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("RESET_PASSWORD_BAD_TOKEN", s.detail(resp))
}

func (s *APITestSuite) TestResetPasswordInvalidPassword() {
	user := s.createUser("test@example.com", true)

	token, err := s.service.ForgotPassword(s.ctx, user.Email)
	s.Require().NoError(err)

	resp := s.request(http.MethodPost, "/api/v1/reset-password/reset-password",
		handlers.ResetPasswordParams{Token: token, Password: "weak"}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	detail, ok := s.detail(resp).(map[string]interface{})
	s.Require().True(ok, "detail must carry code and reason")
	s.Equal("RESET_PASSWORD_INVALID_PASSWORD", detail["code"])
	s.NotEmpty(detail["reason"])
}
