// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tally/config"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Symmetric key for signing tokens.
	ttl    time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// A missing signing secret is a fatal configuration error: the service
// refuses to construct rather than issue unverifiable tokens later.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Token == nil || cfg.Token.Secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	ttl := cfg.Token.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &jwtService{
		secret: cfg.Token.Secret,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed HS256 token for the given user with claims
// {sub, email, name, iat, exp}, expiring ttl after issuance.
func (s *jwtService) Issue(user *entity.User) (string, error) {
	// Guard again per call so a zero-value service can never sign.
	if s.secret == "" {
		return "", domainerrors.ErrMissingSigningSecret.WrapMessage("token issuance refused")
	}

	now := time.Now()
	claims := &service.Claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject claim")
	}
	claims.UserID = userID

	return claims, nil
}
