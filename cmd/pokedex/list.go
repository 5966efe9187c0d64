package main

import (
	"fmt"

	"github.com/wkgunawan/pokedex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if err := deps.Catalog.Bootstrap(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	snap := deps.Catalog.Snapshot()
	if len(snap.Displayed) == 0 {
		fmt.Fprintln(deps.Stdout, "No Pokemon cached yet. Use 'pokedex sync' to fetch the catalog.")
		return nil
	}

	for _, s := range snap.Displayed {
		fmt.Fprintf(deps.Stdout, "#%04d  %s\n", s.ID, s.Name)
	}

	return nil
}
