package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alert-new/recipes"
	"github.com/alert-new/recipes/catalog"
	"github.com/alert-new/recipes/fs"
	rechttp "github.com/alert-new/recipes/http"
	"github.com/alert-new/recipes/rod"
	recslog "github.com/alert-new/recipes/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Registry is the recipe catalog commands run against. Defaults to
	// the built-in catalog; tests may swap it out before calling Run.
	Registry *recipes.Registry
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Registry: catalog.New(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Registry: m.Registry,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipes"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipes --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Resolver = m.Registry
	if cli.Verbose {
		deps.Resolver = recslog.NewLoggingResolver(m.Registry, deps.Logger)
	}

	limiter := rechttp.NewDomainLimiter(cli.Check.RPS)
	deps.NewFetcher = func(render bool) (recipes.Fetcher, error) {
		var fetcher recipes.Fetcher
		if render {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = rechttp.NewFetcher(rechttp.WithLimiter(limiter))
		}
		if cli.Verbose {
			fetcher = recslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		return fetcher, nil
	}

	deps.Snapshots = fs.NewSnapshotStore(cli.Snap.Dir)

	return kongCtx.Run(deps)
}
