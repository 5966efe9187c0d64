package mock

import (
	"context"

	"github.com/wkgunawan/pokedex"
)

var _ pokedex.UserService = (*UserService)(nil)

// UserService is a mock implementation of pokedex.UserService.
type UserService struct {
	RegisterFn func(ctx context.Context, username, email, password string) (*pokedex.User, error)
	LoginFn    func(ctx context.Context, email, password string) (*pokedex.User, error)
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*pokedex.User, error) {
	return s.RegisterFn(ctx, username, email, password)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*pokedex.User, error) {
	return s.LoginFn(ctx, email, password)
}
