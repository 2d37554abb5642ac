package main

import (
	"fmt"

	"github.com/alert-new/recipes"
)

// Run executes the snap command: fetch the recipe's example URLs and store
// each payload as a development fixture.
func (c *SnapCmd) Run(deps *Dependencies) error {
	rec, ok := deps.Resolver.LookupByIdentity(c.ID)
	if !ok {
		err := recipes.Errorf(recipes.ENOTFOUND, "no recipe with identity %q", c.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(err))
		return err
	}

	if rec.RequiresRendering && !c.Render {
		err := recipes.Errorf(recipes.EINVALID,
			"recipe %q requires a rendering fetcher; rerun with --render", rec.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(err))
		return err
	}

	fetcher, err := deps.NewFetcher(rec.RequiresRendering)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	for _, ex := range rec.Examples {
		payload, err := fetcher.Fetch(deps.Ctx, recipes.NewFetchSpec(rec, ex.URL))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", ex.URL, recipes.ErrorMessage(err))
			return err
		}

		changed := deps.Snapshots.Changed(rec.ID, ex.URL, payload)
		snap, err := deps.Snapshots.Save(rec.ID, ex.URL, payload)
		if err != nil {
			return err
		}

		status := "unchanged"
		if changed {
			status = "updated"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s (%d bytes)\n", status, ex.URL, snap.File, snap.Size)
	}

	return nil
}
