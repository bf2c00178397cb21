package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/export"
	"github.com/tsawler/outliner/internal/config"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		flags      config.Config
		formatName string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Outline a single PDF or HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := export.ParseOutputFormat(formatName)
			if err != nil {
				return err
			}
			cfg, err := config.Resolve(flags, root.configPath)
			if err != nil {
				return err
			}

			result, warnings, err := outliner.Open(args[0]).
				MaxPages(cfg.MaxPages).
				MaxFileBytes(cfg.MaxFileBytes).
				HeadingConfig(cfg.LayoutHeadingConfig()).
				Navigation(cfg.NavigationMode()).
				WithLogger(log.Logger).
				Outline()
			if err != nil {
				return err
			}
			for _, w := range warnings {
				log.Warn().Str("file", args[0]).Msg(w.String())
			}
			log.Debug().
				Str("title_source", result.TitleSource.String()).
				Str("language", result.Language).
				Int("pages", result.ScannedPages).
				Dur("elapsed", result.Elapsed).
				Msg("extracted")

			artifact := result.Artifact()
			if outputPath == "" {
				return artifact.Write(cmd.OutOrStdout(), outFormat)
			}
			if outFormat == export.OutputJSON {
				return artifact.WriteFile(outputPath)
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := artifact.Write(f, outFormat); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&formatName, "format", "f", "json", "output format: json or text")
	f.StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")
	f.IntVar(&flags.MaxPages, "max-pages", 0, fmt.Sprintf("pages read (default %d)", config.DefaultMaxPages))
	f.StringVar(&flags.Navigation, "navigation", "", "HTML boilerplate filter: none, explicit, standard or aggressive")

	return cmd
}
