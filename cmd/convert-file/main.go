// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for convert-file, which converts a single
// document to Markdown.
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
		Use:   "convert-file <input_file> [output_file]",
		Short: "Convert a document to Markdown",
		Long: `convert-file converts one document (PDF, Office, HTML, images, ...) to
Markdown. The output defaults to the input path with its extension replaced
by .md; an existing output file is overwritten.`,
		Example: `  convert-file document.pdf
  convert-file document.pdf output.md
  convert-file presentation.pptx slides.md
  convert-file --backend native page.html`,
		Args:         cobra.MinimumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE:         runConvertFile,
	}
	app.AddFlags(cmd.Flags())
	return cmd
}

func runConvertFile(cmd *cobra.Command, args []string) error {
	cfg, logger, err := app.Setup(cmd.Flags(), os.Stderr)
	if err != nil {
		return err
	}

	req := types.ConversionRequest{InputPath: args[0]}
	if len(args) > 1 {
		req.OutputPath = args[1]
	}

	_, err = convert.ConvertFile(app.ConverterFactory(cfg, logger), req, cmd.OutOrStdout())
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
