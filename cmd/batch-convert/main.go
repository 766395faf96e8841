// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for batch-convert, which converts every
// matching document in a directory to Markdown.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc2md/internal/app"
	"github.com/pdiddy/doc2md/internal/convert"
	"github.com/pdiddy/doc2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the command with a fresh flag set.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch-convert <input_directory> [output_directory]",
		Short: "Convert every matching document in a directory to Markdown",
		Long: `batch-convert converts each file in input_directory that matches --pattern
and writes <name>.md into output_directory (default: input_directory).
Markdown files are never converted. A failing file is reported and counted
but does not stop the batch, and does not change the exit status.

Patterns are globs relative to input_directory. One brace group is expanded,
so "*.{pdf,docx}" selects PDF and Word files.`,
		Example: `  batch-convert ./documents
  batch-convert ./documents ./output
  batch-convert ./documents ./output --pattern "*.pdf"
  batch-convert ./documents ./output --pattern "*.{pdf,docx}"`,
		Args:         cobra.RangeArgs(1, 2),
		Version:      version,
		SilenceUsage: true,
		RunE:         runBatchConvert,
	}
	app.AddFlags(cmd.Flags())
	cmd.Flags().String("pattern", "", "glob pattern for file matching (default \"*.*\")")
	cmd.Flags().String("summary-format", "", "summary output: text, yaml, or json")
	return cmd
}

func runBatchConvert(cmd *cobra.Command, args []string) error {
	cfg, logger, err := app.Setup(cmd.Flags(), os.Stderr)
	if err != nil {
		return err
	}

	job := types.BatchJob{InputDir: args[0], Pattern: cfg.Pattern}
	if len(args) > 1 {
		job.OutputDir = args[1]
	}

	out := cmd.OutOrStdout()
	summary, err := convert.RunBatch(job, app.ConverterFactory(cfg, logger), out)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		logger.WithField("failed", summary.Failed).Warn("some files failed conversion")
	}
	if summary.Total == 0 {
		return nil
	}
	return convert.WriteSummary(out, summary, cfg.SummaryFormat)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
