package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// Cancelling on a signal lets the browser session shut down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Getenv).ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd creates the googleit command. Flag parsing is disabled:
// every argument, including ones starting with "-", is a query word.
func newRootCmd(getenv func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   "googleit <query words...>",
		Short: "Search Google from the terminal",
		Long: `googleit renders a Google search in a headless browser and prints
every result as host, clickable title and snippet, with the query
words highlighted.

Configuration comes from the environment:
  GOOGLEIT_DOMAIN   search domain (default google.com)
  GOOGLEIT_FETCHER  browser or http (default browser)
  GOOGLEIT_FORMAT   terminal, markdown or json (default terminal)
  GOOGLEIT_LINKS    osc8 or markup (default osc8)
  GOOGLEIT_WIDTH    snippet wrap width (default 70)
  GOOGLEIT_DEBUG    enable debug logging
  GOOGLEIT_CONFIG   YAML file with the same settings`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), false)

			query := buildQuery(args)
			if query == "" {
				return errEmptyQuery
			}

			cfg, err := loadConfig(getenv)
			if err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), cfg.Debug)

			f, err := newFetcher(cfg)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, query, f, cmd.OutOrStdout(), !color.NoColor)
		},
	}
}

// run executes one search: build the URL, fetch, extract, print.
func run(ctx context.Context, cfg config, query string, f fetcher, w io.Writer, colors bool) error {
	searchURL, err := buildSearchURL(query, cfg.Domain)
	if err != nil {
		return err
	}
	log.Debug().Str("url", searchURL).Str("fetcher", cfg.Fetcher).Msg("searching")

	markup, err := f.Fetch(ctx, searchURL)
	if err != nil {
		return err
	}

	results, err := extractResults(markup, cfg.Domain)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		warnIfChallenge(markup)
	}

	return writeResults(w, query, results, cfg, colors)
}

// warnIfChallenge explains an empty result list caused by a bot check or
// consent page.
func warnIfChallenge(markup string) {
	doc, err := parseTree(markup)
	if err != nil {
		return
	}
	if c := detectChallenge(doc); c != challengeNone {
		log.Warn().Str("challenge", c.String()).Msg("search returned a challenge page instead of results")
	}
}

// reportError prints a fatal error in red.
func reportError(w io.Writer, err error) {
	red := color.New(color.FgRed)
	if errors.Is(err, errEmptyQuery) {
		red.Fprintln(w, "Missing query")
		return
	}
	red.Fprintln(w, "Error:", err)
}
