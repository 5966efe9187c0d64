package main

import (
	"fmt"

	"github.com/wkgunawan/pokedex"
)

// Run executes the login command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	user, err := deps.Users.Login(deps.Ctx, c.Email, c.Password)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Logged in as %s.\n", user.Username)
	return nil
}
