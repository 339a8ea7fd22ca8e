package handlers

import (
	"fmt"
	"net/mail"
	"strings"
)

// RegisterParams defines the body of POST /register
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate validates the registration parameters
func (p RegisterParams) Validate() error {
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if p.Password == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgPasswordRequired))
	}
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgNameRequired))
	}
	return nil
}

// LoginParams defines the body of POST /auth/login
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login parameters
func (p LoginParams) Validate() error {
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if p.Password == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgPasswordRequired))
	}
	return nil
}

// EmailParams defines a body carrying a single email field
type EmailParams struct {
	Email string `json:"email"`
}

// Validate validates the email parameter
func (p EmailParams) Validate() error {
	return validateEmail(p.Email)
}

// VerifyParams defines the body of POST /verify/verify
type VerifyParams struct {
	Code string `json:"code"`
}

// Validate validates the verification parameters
func (p VerifyParams) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgCodeRequired))
	}
	return nil
}

// ResetPasswordParams defines the body of POST /reset-password/reset-password
type ResetPasswordParams struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate validates the reset-password parameters
func (p ResetPasswordParams) Validate() error {
	if p.Token == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgTokenRequired))
	}
	if p.Password == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgPasswordRequired))
	}
	return nil
}

// UserUpdateParams defines the body of PATCH /users/me and PATCH /users/:id.
// Absent fields are left unchanged; the privilege flags are only honored on
// the superuser endpoint.
type UserUpdateParams struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
	IsVerified  *bool   `json:"is_verified,omitempty"`
}

// Validate validates the update parameters
func (p UserUpdateParams) Validate() error {
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgEmailRequired))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgInvalidEmail))
	}
	return nil
}
