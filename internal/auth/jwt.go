package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Kentemie/Fast-and-Furious/config"
	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
)

// TokenType distinguishes access tokens from refresh tokens. The type is
// embedded in the token claims and enforced on decode, so a refresh token
// can never be replayed as an access token.
type TokenType string

// Issued token types
const (
	AccessToken  TokenType = "access_token"
	RefreshToken TokenType = "refresh_token"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong audience, expired, or wrong token type.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload issued by the strategy.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
}

// JWTStrategy issues and verifies RS256-signed bearer tokens.
type JWTStrategy struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	audience   string
	lifetimes  map[TokenType]time.Duration
	now        func() time.Time
}

// NewJWTStrategy loads the RSA key pair from the configured PEM files.
func NewJWTStrategy(cfg config.Auth) (*JWTStrategy, error) {
	privPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	pubPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return NewJWTStrategyFromKeys(privateKey, publicKey, cfg.TokenAudience,
		cfg.AccessTokenLifetime, cfg.RefreshTokenLifetime), nil
}

// NewJWTStrategyFromKeys builds a strategy from in-memory keys.
func NewJWTStrategyFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey,
	audience string, accessLifetime, refreshLifetime time.Duration) *JWTStrategy {
	return &JWTStrategy{
		privateKey: privateKey,
		publicKey:  publicKey,
		audience:   audience,
		lifetimes: map[TokenType]time.Duration{
			AccessToken:  accessLifetime,
			RefreshToken: refreshLifetime,
		},
		now: time.Now,
	}
}

// Lifetime returns the configured lifetime for the given token type.
func (s *JWTStrategy) Lifetime(tokenType TokenType) time.Duration {
	return s.lifetimes[tokenType]
}

// WriteToken issues a token of the given type for the user.
func (s *JWTStrategy) WriteToken(user *models.User, tokenType TokenType) (string, error) {
	lifetime, ok := s.lifetimes[tokenType]
	if !ok {
		return "", fmt.Errorf("unknown token type: %s", tokenType)
	}

	now := s.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		TokenType: tokenType,
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
}

// ReadToken verifies a token and returns the user id it was issued for and
// its expiry. Returns ErrInvalidToken when the token fails verification or
// is not of the required type.
func (s *JWTStrategy) ReadToken(token string, requiredType TokenType) (uint, time.Time, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.publicKey, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.TokenType != requiredType {
		return 0, time.Time{}, fmt.Errorf("%w: wrong token type", ErrInvalidToken)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: malformed subject", ErrInvalidToken)
	}

	return uint(userID), claims.ExpiresAt.Time, nil
}
