package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wkgunawan/pokedex"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time interface verification.
var _ pokedex.UserService = (*UserService)(nil)

// UserService implements pokedex.UserService using SQLite. User records share
// the cache document table under the "user" kind, discriminated by email.
// Unlike summary/detail records, user storage failures propagate to the
// caller: there is no remote fallback for accounts.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*pokedex.User, error) {
	if err := pokedex.ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	taken, err := s.usernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, pokedex.Errorf(pokedex.ECONFLICT, "This username is already taken")
	}

	if _, err := s.userByEmail(ctx, email); err == nil {
		return nil, pokedex.Errorf(pokedex.ECONFLICT, "An account with this email already exists")
	} else if pokedex.ErrorCode(err) != pokedex.ENOTFOUND {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &pokedex.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := upsertRecord(ctx, s.db, pokedex.KindUser, user.Email, 0, payload); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials against the stored account.
func (s *UserService) Login(ctx context.Context, email, password string) (*pokedex.User, error) {
	if err := pokedex.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	user, err := s.userByEmail(ctx, email)
	if pokedex.ErrorCode(err) == pokedex.ENOTFOUND {
		return nil, pokedex.Errorf(pokedex.EUNAUTHORIZED, "No account found with this email address")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, pokedex.Errorf(pokedex.EUNAUTHORIZED, "Incorrect password")
	}

	return user, nil
}

// userByEmail loads a user document by email.
func (s *UserService) userByEmail(ctx context.Context, email string) (*pokedex.User, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM cache WHERE kind = ? AND discriminator = ?
	`, pokedex.KindUser, email).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, pokedex.Errorf(pokedex.ENOTFOUND, "user not found")
	}
	if err != nil {
		return nil, err
	}

	var user pokedex.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// usernameExists scans user documents for a matching username. Usernames are
// not the document key, so this is a field lookup over the payload JSON.
func (s *UserService) usernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cache
		WHERE kind = ? AND json_extract(payload, '$.username') = ?
	`, pokedex.KindUser, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
