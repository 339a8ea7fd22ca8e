// Package auth implements password hashing and JWT issuing/verification.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters for newly hashed passwords.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonSaltLen = 16
	argonKeyLen  = 32
)

// Password length bounds enforced by ValidatePassword.
const (
	minPasswordLen = 5
	maxPasswordLen = 20
)

// validSpecialChars is the punctuation allowed in passwords. Everything
// else outside letters and digits is rejected.
var validSpecialChars = map[rune]bool{
	'-': true, '_': true, '.': true, '!': true, '@': true,
	'#': true, '$': true, '^': true, '&': true, '(': true, ')': true,
}

// InvalidPasswordError reports a password-policy violation with a
// human-readable reason, surfaced verbatim in API responses.
type InvalidPasswordError struct {
	Reason string
}

func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("invalid password: %s", e.Reason)
}

// PasswordHelper hashes and verifies passwords. New hashes use argon2id;
// verification also accepts legacy bcrypt hashes and reports when a stored
// hash should be upgraded.
type PasswordHelper struct{}

// NewPasswordHelper creates a password helper.
func NewPasswordHelper() *PasswordHelper {
	return &PasswordHelper{}
}

// Hash hashes a password with argon2id and returns it in PHC string format.
func (h *PasswordHelper) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyAndUpdate verifies a password against a stored hash. When the hash
// uses an outdated scheme (bcrypt) the returned updated string carries a
// fresh argon2id hash to persist; it is empty otherwise.
func (h *PasswordHelper) VerifyAndUpdate(password, hashed string) (ok bool, updated string, err error) {
	switch {
	case strings.HasPrefix(hashed, "$argon2id$"):
		ok, err = verifyArgon2id(password, hashed)
		return ok, "", err
	case strings.HasPrefix(hashed, "$2a$"), strings.HasPrefix(hashed, "$2b$"), strings.HasPrefix(hashed, "$2y$"):
		if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
			return false, "", nil
		}
		updated, err = h.Hash(password)
		if err != nil {
			return false, "", err
		}
		return true, updated, nil
	default:
		return false, "", fmt.Errorf("unsupported password hash format")
	}
}

// ValidatePassword checks a password against the account password policy.
// Returns an *InvalidPasswordError describing the first violation found.
func (h *PasswordHelper) ValidatePassword(password string) error {
	if strings.TrimSpace(password) != password {
		return &InvalidPasswordError{Reason: "Password should not contain leading or trailing spaces."}
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return &InvalidPasswordError{Reason: "Password length must be between 5 and 20 characters."}
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case validSpecialChars[r]:
			// allowed punctuation
		default:
			return &InvalidPasswordError{Reason: "Password contains invalid characters."}
		}
	}

	if !hasDigit || !hasLower || !hasUpper {
		return &InvalidPasswordError{
			Reason: "Password must contain at least one digit, one lowercase letter, and one uppercase letter.",
		}
	}
	return nil
}

func verifyArgon2id(password, hashed string) (bool, error) {
	// $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>
	parts := strings.Split(hashed, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("malformed argon2id parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id key: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}
