package pokedex

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// User represents a registered account. The cache layer scopes per-user
// records by email; the catalog core itself is single-tenant per process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

var emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// ValidateRegistration checks the raw registration inputs.
func ValidateRegistration(username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return Errorf(EINVALID, "Please enter a username")
	}
	if strings.TrimSpace(email) == "" {
		return Errorf(EINVALID, "Please enter your email address")
	}
	if password == "" {
		return Errorf(EINVALID, "Please enter your password")
	}
	if !emailPattern.MatchString(email) {
		return Errorf(EINVALID, "Please enter a valid email address")
	}
	if len(password) < 6 {
		return Errorf(EINVALID, "Password must be at least 6 characters")
	}
	return nil
}

// ValidateLogin checks the raw login inputs.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return Errorf(EINVALID, "Please enter your email address")
	}
	if password == "" {
		return Errorf(EINVALID, "Please enter your password")
	}
	return nil
}

// UserService is the session/auth collaborator. The catalog core only needs
// a current-session source for cache namespacing; account management lives
// behind this interface.
type UserService interface {
	// Register creates a new account. Returns EINVALID for bad inputs and
	// ECONFLICT when the username or email is already taken.
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Login verifies credentials. Returns EUNAUTHORIZED when the email is
	// unknown or the password does not match.
	Login(ctx context.Context, email, password string) (*User, error)
}
