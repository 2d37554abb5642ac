package main

import "fmt"

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	rec := deps.Resolver.Resolve(c.URL)
	fmt.Fprintf(deps.Stdout, "%s  %s\n", rec.ID, rec.Name)
	return nil
}
