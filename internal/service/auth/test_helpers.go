package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VernoB/TodoTask/internal/config"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication
// suitable for testing. This is the single source of truth for JWT test config.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long", // At least 32 chars
		TokenLifetimeMinutes: 60,
		BcryptCost:           DefaultBcryptCost,
	}
}

// NewTestJWTService creates a JWT service with default configuration for
// testing. This is the recommended way to create a JWT service for tests.
func NewTestJWTService() (JWTService, error) {
	return NewJWTService(DefaultJWTConfig())
}

// GenerateTokenForTesting creates a JWT token for the specified user without
// having to instantiate a JWT service.
func GenerateTokenForTesting(userID uuid.UUID, email string) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	return svc.GenerateToken(context.Background(), userID, email)
}

// GenerateExpiredTokenForTesting creates a token that expired an hour ago,
// well past the validation clock skew.
func GenerateExpiredTokenForTesting(userID uuid.UUID, email string) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	impl, ok := svc.(*hmacJWTService)
	if !ok {
		return "", fmt.Errorf("unexpected JWT service implementation %T", svc)
	}
	expiry := time.Now().Add(-1 * time.Hour)
	return impl.GenerateTokenWithExpiry(context.Background(), userID, email, expiry)
}

// GenerateAuthHeaderForTesting creates an Authorization header value with
// Bearer prefix containing a valid JWT token for the specified user.
func GenerateAuthHeaderForTesting(userID uuid.UUID, email string) (string, error) {
	token, err := GenerateTokenForTesting(userID, email)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
