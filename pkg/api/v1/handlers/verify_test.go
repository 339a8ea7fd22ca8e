package handlers_test

import (
	"net/http"

	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
)

func (s *APITestSuite) TestRequestVerifyCode() {
	s.createUser("test@example.com", false)

	resp := s.request(http.MethodPost, "/api/v1/verify/request-verify-code",
		handlers.EmailParams{Email: "test@example.com"}, "")
	s.Equal(http.StatusAccepted, resp.StatusCode)
}

func (s *APITestSuite) TestRequestVerifyCodeHidesAccountState() {
	// Unknown accounts and already-verified accounts get the same answer
	resp := s.request(http.MethodPost, "/api/v1/verify/request-verify-code",
		handlers.EmailParams{Email: "nobody@example.com"}, "")
	s.Equal(http.StatusAccepted, resp.StatusCode)

	s.createUser("verified@example.com", true)
	resp = s.request(http.MethodPost, "/api/v1/verify/request-verify-code",
		handlers.EmailParams{Email: "verified@example.com"}, "")
	s.Equal(http.StatusAccepted, resp.StatusCode)
}

func (s *APITestSuite) TestVerify() {
	user := s.createUser("test@example.com", false)

	code, err := s.service.RequestVerification(s.ctx, user.Email)
	s.Require().NoError(err)

	resp := s.request(http.MethodPost, "/api/v1/verify/verify",
		handlers.VerifyParams{Code: code}, "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var verified models.User
	s.decode(resp, &verified)
	s.True(verified.IsVerified)
	s.Equal(user.ID, verified.ID)

	// The code is single-use
	resp = s.request(http.MethodPost, "/api/v1/verify/verify",
		handlers.VerifyParams{Code: code}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("VERIFY_USER_BAD_CODE", s.detail(resp))
}

func (s *APITestSuite) TestVerifyBadCode() {
	resp := s.request(http.MethodPost, "/api/v1/verify/verify",
		handlers.VerifyParams{Code: "000000"}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("VERIFY_USER_BAD_CODE", s.detail(resp))
}

func (s *APITestSuite) TestVerifyAlreadyVerified() {
	user := s.createUser("test@example.com", false)

	code, err := s.service.RequestVerification(s.ctx, user.Email)
	s.Require().NoError(err)

	// Verify through another path before redeeming the code
	user.IsVerified = true
	s.Require().NoError(s.db.Save(user).Error)

	resp := s.request(http.MethodPost, "/api/v1/verify/verify",
		handlers.VerifyParams{Code: code}, "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("VERIFY_USER_ALREADY_VERIFIED", s.detail(resp))
}
