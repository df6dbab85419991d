package main

import (
	"fmt"

	"github.com/cybergodev/dlmeta"
	"github.com/cybergodev/dlmeta/internal/config"
	"github.com/cybergodev/dlmeta/internal/logger"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// createRootCommand builds the dlmeta command tree. Flag defaults come from
// settings, so flags override the environment.
func createRootCommand(settings *config.Settings) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "dlmeta",
		Short: "Extract download metadata from a saved HTML page",
		Long: `dlmeta reads a locally saved downloads page, finds the table classed
"download", and prints the platform, version, file size and SHA-256 checksum
of the last row whose platform label contains the requested platform.
Settings are read from a .env file or DLMETA_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(cmd.ErrOrStderr(), resolveLogLevel(settings.LogLevel, verbose))
			if err != nil {
				return err
			}
			logger.Init(l)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, settings)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&settings.File, "file", "f", settings.File, "HTML file to read")
	flags.StringVarP(&settings.Platform, "platform", "p", settings.Platform, "Platform label substring to match (case-sensitive)")
	flags.StringVar(&settings.Charset, "charset", settings.Charset, `Input charset: utf-8, auto, or an encoding label`)
	flags.StringVar(&settings.Format, "format", settings.Format, "Output format: json or yaml")
	flags.BoolVar(&settings.SkipMalformed, "skip-malformed", settings.SkipMalformed, "Skip matching rows that cannot be parsed")
	flags.IntVar(&settings.MaxInputSize, "max-input-size", settings.MaxInputSize, "Largest input accepted, in bytes")
	flags.IntVar(&settings.MaxDepth, "max-depth", settings.MaxDepth, "Deepest element nesting accepted (0 = parser limit only)")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "Log level: debug, info, warn or error")
	persistent.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(createVersionCommand())
	return rootCmd
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dlmeta version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "dlmeta %s\n", version)
			return err
		},
	}
}

func resolveLogLevel(level string, verbose bool) string {
	if verbose {
		return "debug"
	}
	return level
}

func runExtract(cmd *cobra.Command, settings *config.Settings) error {
	format, err := dlmeta.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	cfg := dlmeta.DefaultConfig()
	cfg.Platform = settings.Platform
	cfg.Charset = settings.Charset
	cfg.SkipMalformedRows = settings.SkipMalformed
	cfg.MaxInputSize = settings.MaxInputSize
	cfg.MaxDepth = settings.MaxDepth

	extractor, err := dlmeta.New(cfg)
	if err != nil {
		return err
	}

	logger.Logger().Debugw("extracting", "file", settings.File, "platform", cfg.Platform)
	record, err := extractor.ExtractFromFile(settings.File)
	if err != nil {
		return err
	}
	return dlmeta.WriteRecord(cmd.OutOrStdout(), record, format, cfg.Platform)
}
