// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential record for one account: the email is the unique
// login identifier and PasswordHash holds the bcrypt digest of the password.
// Records are immutable after signup; no update or delete flow exists.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, the unique login identifier.
	Name         string    // The user's display name.
	PasswordHash string    // bcrypt digest of the password. Never exposed outside the store and hasher.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}
