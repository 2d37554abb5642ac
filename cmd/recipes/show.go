package main

import (
	"encoding/json"
	"fmt"

	"github.com/alert-new/recipes"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, ok := deps.Resolver.LookupByIdentity(c.ID)
	if !ok {
		err := recipes.Errorf(recipes.ENOTFOUND, "no recipe with identity %q", c.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(recipes.Project(rec), "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
