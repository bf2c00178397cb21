// Command outliner extracts the title and heading outline of PDF and HTML
// documents.
package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type rootOptions struct {
	configPath string
	verbose    bool
	jsonLogs   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "outliner",
		Short: "Extract the title and heading outline of PDF and HTML documents",
		Long: `outliner reads PDF and HTML documents and writes their title and a
three-level heading outline as JSON.

Settings come from flags, OUTLINER_* environment variables, an optional
YAML or JSON file given with --config, and built-in defaults, in that order.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML or JSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "log.json", false, "write logs as JSON instead of console text")

	cmd.AddCommand(
		newRunCmd(opts),
		newExtractCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func setupLogging(w io.Writer, opts *rootOptions) {
	zerolog.TimeFieldFormat = time.RFC3339
	if opts.jsonLogs {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	if opts.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
