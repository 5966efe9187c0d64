package main

import (
	"fmt"

	"github.com/wkgunawan/pokedex"
)

// Run executes the register command.
func (c *RegisterCmd) Run(deps *Dependencies) error {
	user, err := deps.Users.Register(deps.Ctx, c.Username, c.Email, c.Password)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Welcome, %s! Your account is ready.\n", user.Username)
	return nil
}
