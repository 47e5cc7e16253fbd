package auth

import (
	"testing"
	"time"

	"tally/config"
	"tally/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Token = &config.TokenConfig{Secret: secret, TTL: ttl}

	return cfg
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:    uuid.New(),
		Email: "a@x.com",
		Name:  "Ann",
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(newTestTokenConfig("test_secret_key_very_long_for_testing", 24*time.Hour))
	require.NoError(t, err)

	user := newTestUser()

	token, err := jwtService.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
}

func TestJWTService_ExpiryIs24Hours(t *testing.T) {
	jwtService, err := NewJWTService(newTestTokenConfig("test_secret_key_very_long_for_testing", 24*time.Hour))
	require.NoError(t, err)

	token, err := jwtService.Issue(newTestUser())
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)

	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_ExpiredTokenFailsValidation(t *testing.T) {
	// A negative TTL produces a token that is already expired at issuance.
	jwtService, err := NewJWTService(newTestTokenConfig("test_secret_key_very_long_for_testing", -time.Minute))
	require.NoError(t, err)

	token, err := jwtService.Issue(newTestUser())
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestTokenConfig("test_secret_key_very_long_for_testing", 24*time.Hour))
	require.NoError(t, err)

	claims, err := jwtService.Validate("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_WrongSecretFailsValidation(t *testing.T) {
	issuer, err := NewJWTService(newTestTokenConfig("secret_one_very_long_for_testing", 24*time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestTokenConfig("secret_two_very_long_for_testing", 24*time.Hour))
	require.NoError(t, err)

	token, err := issuer.Issue(newTestUser())
	require.NoError(t, err)

	claims, err := verifier.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	// Missing signing secret is a fatal configuration error.
	jwtService, err := NewJWTService(newTestTokenConfig("", 24*time.Hour))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "signing secret must be provided")

	// Nil token section behaves the same.
	jwtService, err = NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}

func TestJWTService_ZeroValueServiceRefusesToSign(t *testing.T) {
	svc := &jwtService{}

	token, err := svc.Issue(newTestUser())
	assert.Error(t, err)
	assert.Empty(t, token)
}
