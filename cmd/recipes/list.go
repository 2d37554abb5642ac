package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, rec := range deps.Resolver.ListAll() {
		rendering := ""
		if rec.RequiresRendering {
			rendering = "(rendering)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.ID, rec.Category, rec.Name, rendering)
	}
	return w.Flush()
}
