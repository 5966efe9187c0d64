package main

import (
	"fmt"

	"github.com/wkgunawan/pokedex"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	if err := deps.Catalog.Refresh(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	for page := 1; page < c.Pages; page++ {
		if !deps.Catalog.Snapshot().Cursor.HasMore {
			break
		}
		if err := deps.Catalog.LoadNextPage(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Synced %d Pokemon.\n", len(deps.Catalog.Snapshot().All))
	return nil
}
