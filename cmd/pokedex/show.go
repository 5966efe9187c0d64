package main

import (
	"fmt"
	"strconv"

	"github.com/wkgunawan/pokedex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	var detail *pokedex.Detail
	var err error

	if id, convErr := strconv.Atoi(c.Pokemon); convErr == nil {
		detail, err = deps.Details.Load(deps.Ctx, id)
	} else {
		detail, err = deps.Client.FetchDetailByName(deps.Ctx, c.Pokemon)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	printDetail(deps, detail)
	return nil
}

func printDetail(deps *Dependencies, d *pokedex.Detail) {
	fmt.Fprintf(deps.Stdout, "#%04d  %s\n", d.ID, d.Name)
	fmt.Fprintf(deps.Stdout, "Height: %d\n", d.Height)
	fmt.Fprintf(deps.Stdout, "Weight: %d\n", d.Weight)

	if len(d.Types) > 0 {
		fmt.Fprint(deps.Stdout, "Types:")
		for _, t := range d.Types {
			fmt.Fprintf(deps.Stdout, " %s", t.Name)
		}
		fmt.Fprintln(deps.Stdout)
	}

	if len(d.Abilities) > 0 {
		fmt.Fprintln(deps.Stdout, "Abilities:")
		for _, a := range d.Abilities {
			if a.Hidden {
				fmt.Fprintf(deps.Stdout, "  %s (hidden)\n", a.Name)
				continue
			}
			fmt.Fprintf(deps.Stdout, "  %s\n", a.Name)
		}
	}
}
