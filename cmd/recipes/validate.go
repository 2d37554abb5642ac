package main

import (
	"fmt"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/validate"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	res := validate.Catalog(deps.Registry)

	if !c.Quiet {
		for _, w := range res.Warnings {
			fmt.Fprintf(deps.Stdout, "warning  %s\n", w)
		}
	}
	for _, e := range res.Errors {
		fmt.Fprintf(deps.Stdout, "error    %s\n", e)
	}

	fmt.Fprintf(deps.Stdout, "%d recipes, %d errors, %d warnings\n",
		len(deps.Registry.ListAll()), len(res.Errors), len(res.Warnings))

	if !res.Valid() {
		return recipes.Errorf(recipes.EINVALID, "catalog validation failed with %d errors", len(res.Errors))
	}
	return nil
}
