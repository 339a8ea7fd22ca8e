package handlers

// Error codes returned in the "detail" field of 400 responses. The strings
// are part of the wire contract consumed by API clients.
const (
	ErrCodeLoginBadCredentials  = "LOGIN_BAD_CREDENTIALS"
	ErrCodeLoginUserNotVerified = "LOGIN_USER_NOT_VERIFIED"

	ErrCodeRegisterUserAlreadyExists = "REGISTER_USER_ALREADY_EXISTS"
	ErrCodeRegisterInvalidPassword   = "REGISTER_INVALID_PASSWORD"

	ErrCodeUpdateUserEmailAlreadyExists = "UPDATE_USER_EMAIL_ALREADY_EXISTS"
	ErrCodeUpdateUserInvalidPassword    = "UPDATE_USER_INVALID_PASSWORD"

	ErrCodeVerifyUserBadCode         = "VERIFY_USER_BAD_CODE"
	ErrCodeVerifyUserAlreadyVerified = "VERIFY_USER_ALREADY_VERIFIED"

	ErrCodeResetPasswordBadToken        = "RESET_PASSWORD_BAD_TOKEN"
	ErrCodeResetPasswordInvalidPassword = "RESET_PASSWORD_INVALID_PASSWORD"
)

// Common error messages
const (
	ErrMsgInvalidReqBody   = "Invalid request body"
	ErrMsgEmailRequired    = "Email is required"
	ErrMsgInvalidEmail     = "Invalid email format"
	ErrMsgPasswordRequired = "Password is required"
	ErrMsgCodeRequired     = "Code is required"
	ErrMsgTokenRequired    = "Token is required"
	ErrMsgNameRequired     = "First name and last name are required"
)

// User error messages
const (
	ErrMsgInvalidUserID      = "Invalid user id"
	ErrMsgGetUsersFailed     = "Failed to get users"
	ErrMsgUpdateUserFailed   = "Failed to update user"
	ErrMsgDeleteUserFailed   = "Failed to delete user"
	ErrMsgNegativePagination = "Page must be a positive number from 1"
)
