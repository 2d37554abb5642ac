package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/validate"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	rec, err := c.pickRecipe(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(err))
		return err
	}

	payload, err := c.loadPayload(deps, rec)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(err))
		return err
	}

	res := validate.Extraction(deps.Ctx, rec, payload, c.URL)
	if !res.Success {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(res.Err))
		return res.Err
	}

	out, err := json.MarshalIndent(res.Fields, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "recipe: %s\n%s\n", rec.ID, out)
	return nil
}

func (c *ExtractCmd) pickRecipe(deps *Dependencies) (*recipes.Recipe, error) {
	if c.Recipe != "" {
		rec, ok := deps.Resolver.LookupByIdentity(c.Recipe)
		if !ok {
			return nil, recipes.Errorf(recipes.ENOTFOUND, "no recipe with identity %q", c.Recipe)
		}
		return rec, nil
	}
	return deps.Resolver.Resolve(c.URL), nil
}

func (c *ExtractCmd) loadPayload(deps *Dependencies, rec *recipes.Recipe) (string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", recipes.Errorf(recipes.EINVALID, "cannot read payload file: %v", err)
		}
		return string(data), nil
	}

	if rec.RequiresRendering && !c.Render {
		return "", recipes.Errorf(recipes.EINVALID,
			"recipe %q requires a rendering fetcher; rerun with --render or supply --file", rec.ID)
	}

	fetcher, err := deps.NewFetcher(rec.RequiresRendering)
	if err != nil {
		return "", err
	}
	defer fetcher.Close()

	return fetcher.Fetch(deps.Ctx, recipes.NewFetchSpec(rec, c.URL))
}
