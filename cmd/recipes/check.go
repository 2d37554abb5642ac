package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/bloom"
	rechttp "github.com/alert-new/recipes/http"
	"github.com/alert-new/recipes/validate"
	"golang.org/x/sync/errgroup"
)

// checkOutcome is the result of exercising one example URL.
type checkOutcome struct {
	recipe  string
	url     string
	skipped bool
	fields  int
	err     error
}

// Run executes the check command: fetch every targeted recipe's example
// URLs and verify the extraction routine produces fields for them.
func (c *CheckCmd) Run(deps *Dependencies) error {
	targets, err := c.targets(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipes.ErrorMessage(err))
		return err
	}

	plain, err := deps.NewFetcher(false)
	if err != nil {
		return err
	}
	defer plain.Close()

	var render recipes.Fetcher
	if c.Render {
		render, err = deps.NewFetcher(true)
		if err != nil {
			return err
		}
		defer render.Close()
	}

	// Example lists are small, but recipes share URLs; dedupe instead of
	// refetching.
	seen := bloom.NewFilter(1024, 0.001)

	var (
		mu       sync.Mutex
		outcomes []checkOutcome
	)
	report := func(o checkOutcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	for _, rec := range targets {
		for _, ex := range rec.Examples {
			if seen.TestAndAdd(rec.ID + " " + ex.URL) {
				continue
			}

			if rec.RequiresRendering && render == nil {
				report(checkOutcome{recipe: rec.ID, url: ex.URL, skipped: true})
				continue
			}

			fetcher := plain
			if rec.RequiresRendering {
				fetcher = render
			}

			rec, url := rec, ex.URL
			g.Go(func() error {
				payload, err := rechttp.FetchWithRetry(ctx, fetcher, recipes.NewFetchSpec(rec, url), nil)
				if err != nil {
					report(checkOutcome{recipe: rec.ID, url: url, err: err})
					return nil
				}

				res := validate.Extraction(ctx, rec, payload, url)
				if !res.Success {
					report(checkOutcome{recipe: rec.ID, url: url, err: res.Err})
					return nil
				}

				report(checkOutcome{recipe: rec.ID, url: url, fields: len(res.Fields)})
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].recipe != outcomes[j].recipe {
			return outcomes[i].recipe < outcomes[j].recipe
		}
		return outcomes[i].url < outcomes[j].url
	})

	failures := 0
	for _, o := range outcomes {
		switch {
		case o.skipped:
			fmt.Fprintf(deps.Stdout, "skip  %s  %s  (requires rendering; use --render)\n", o.recipe, o.url)
		case o.err != nil:
			failures++
			fmt.Fprintf(deps.Stdout, "FAIL  %s  %s  %s\n", o.recipe, o.url, recipes.ErrorMessage(o.err))
		case o.fields == 0:
			fmt.Fprintf(deps.Stdout, "warn  %s  %s  no fields extracted\n", o.recipe, o.url)
		default:
			fmt.Fprintf(deps.Stdout, "ok    %s  %s  %d fields\n", o.recipe, o.url, o.fields)
		}
	}

	if failures > 0 {
		return recipes.Errorf(recipes.EINVALID, "%d example checks failed", failures)
	}
	return nil
}

func (c *CheckCmd) targets(deps *Dependencies) ([]*recipes.Recipe, error) {
	all := deps.Resolver.ListAll()
	if len(c.Recipes) == 0 {
		return all, nil
	}

	var targets []*recipes.Recipe
	for _, id := range c.Recipes {
		rec, ok := deps.Resolver.LookupByIdentity(id)
		if !ok {
			return nil, recipes.Errorf(recipes.ENOTFOUND, "no recipe with identity %q", id)
		}
		targets = append(targets, rec)
	}
	return targets, nil
}
