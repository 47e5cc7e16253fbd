package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tally/internal/domain/entity"
)

// Claims defines the custom claims embedded in issued bearer tokens.
// Claims are signed but not encrypted, so they carry identifiers only.
// The user ID travels in the registered "sub" claim; UserID is its parsed form.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded token asserting the user's identity.
	Issue(user *entity.User) (string, error)

	// Validate checks the signature and expiry of a token string.
	// No protected route uses it yet, but the issuance contract must
	// produce a token whose expiry is checkable.
	Validate(tokenString string) (*Claims, error)
}
