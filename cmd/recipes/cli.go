package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Registry is the concrete catalog, for validation.
	Registry *recipes.Registry

	// Resolver is the dispatch surface, possibly wrapped with logging.
	Resolver recipes.Resolver

	// NewFetcher builds a fetcher on demand; render selects browser
	// automation for recipes flagged RequiresRendering.
	NewFetcher func(render bool) (recipes.Fetcher, error)

	// Snapshots stores fetched example payloads.
	Snapshots *fs.SnapshotStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	List     ListCmd     `cmd:"" help:"List all catalog recipes"`
	Show     ShowCmd     `cmd:"" help:"Show a recipe's serializable projection"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a URL to the recipe that claims it"`
	Extract  ExtractCmd  `cmd:"" help:"Run a recipe's extraction over a URL"`
	Validate ValidateCmd `cmd:"" help:"Validate the whole catalog"`
	Check    CheckCmd    `cmd:"" help:"Fetch example URLs and verify extraction"`
	Snap     SnapCmd     `cmd:"" help:"Snapshot a recipe's example payloads"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Recipe identity"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	URL string `arg:"" help:"URL to dispatch"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Subject URL"`
	File   string `short:"f" help:"Read the payload from a file instead of fetching"`
	Recipe string `short:"r" help:"Force a recipe identity instead of URL dispatch"`
	Render bool   `help:"Allow launching a browser for rendering recipes"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Quiet bool `short:"q" help:"Suppress warnings, report errors only"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Recipes     []string `short:"r" name:"recipe" help:"Limit to specific recipe identities (repeatable)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `default:"1" help:"Per-domain requests per second"`
	Render      bool     `help:"Check rendering recipes with a browser"`
}

// SnapCmd is the "snap" subcommand.
type SnapCmd struct {
	ID     string `arg:"" help:"Recipe identity"`
	Dir    string `default:"testdata/snapshots" help:"Snapshot directory"`
	Render bool   `help:"Allow launching a browser for rendering recipes"`
}
