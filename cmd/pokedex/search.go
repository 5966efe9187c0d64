package main

import (
	"fmt"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	// Seed the catalog so local matches work offline; a failed bootstrap
	// still leaves the remote lookups, so it is not fatal here.
	_ = deps.Catalog.Bootstrap(deps.Ctx)

	results := deps.Finder.Search(deps.Ctx, c.Query)
	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "no results for %q\n", c.Query)
		return nil
	}

	for _, s := range results {
		fmt.Fprintf(deps.Stdout, "#%04d  %s\n", s.ID, s.Name)
	}

	return nil
}
