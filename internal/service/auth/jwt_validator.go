package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// minSecretLength is the shortest HMAC secret NewJWTValidator accepts.
const minSecretLength = 32

// JWTValidator verifies HS256 tokens and uses their subject as the identity.
type JWTValidator struct {
	signingKey []byte
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration
}

// Ensure JWTValidator implements TokenValidator interface
var _ TokenValidator = (*JWTValidator)(nil)

// NewJWTValidator creates a JWTValidator from auth configuration.
func NewJWTValidator(cfg config.AuthConfig) (*JWTValidator, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}

	return &JWTValidator{
		signingKey: []byte(cfg.JWTSecret),
		timeFunc:   time.Now,
		clockSkew:  cfg.ClockSkew,
	}, nil
}

// NewValidator returns the TokenValidator selected by cfg.Mode.
func NewValidator(cfg config.AuthConfig) (TokenValidator, error) {
	switch cfg.Mode {
	case "", config.AuthModeOpaque:
		return OpaqueValidator{}, nil
	case config.AuthModeJWT:
		return NewJWTValidator(cfg)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// Validate implements TokenValidator.
func (v *JWTValidator) Validate(ctx context.Context, tokenString string) (string, error) {
	log := logger.FromContext(ctx)
	now := v.timeFunc()

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return "", ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", "error", err)
			return "", ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return "", ErrInvalidToken
		}
	}

	if !token.Valid || claims.Subject == "" {
		log.Debug("token validation failed: missing subject")
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// IssueToken signs a token for subject that expires after lifetime. It is
// used by operators and tests to mint credentials for jwt mode.
func (v *JWTValidator) IssueToken(subject string, lifetime time.Duration) (string, error) {
	now := v.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.New().String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}
