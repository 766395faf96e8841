// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc2md/pkg/types"
)

var (
	// ErrDirNotFound reports a missing batch input directory.
	ErrDirNotFound = errors.New("input directory not found")
	// ErrNotDirectory reports a batch input path that is not a directory.
	ErrNotDirectory = errors.New("input path is not a directory")
)

var (
	okMark   = color.New(color.FgGreen).Sprint("[OK]")
	failMark = color.New(color.FgRed).Sprint("[X]")
)

const rule = "=================================================="

// RunBatch converts every file in job.InputDir that matches job.Pattern,
// writing <stem>.md files into the output directory. A failure on one file is
// counted and printed but never stops the batch; only validation, file
// resolution, and converter construction errors are returned.
//
// The converter is constructed once, after at least one file is found, and
// reused for every file. The summary block is printed to w before returning.
func RunBatch(job types.BatchJob, newConverter Factory, w io.Writer) (types.Summary, error) {
	var summary types.Summary

	info, err := os.Stat(job.InputDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return summary, fmt.Errorf("%w: %s", ErrDirNotFound, job.InputDir)
	case err != nil:
		return summary, fmt.Errorf("checking input directory %s: %w", job.InputDir, err)
	case !info.IsDir():
		return summary, fmt.Errorf("%w: %s", ErrNotDirectory, job.InputDir)
	}

	outDir := job.ResolvedOutputDir()
	if job.OutputDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return summary, fmt.Errorf("creating output directory %s: %w", outDir, err)
		}
	}

	pattern := job.ResolvedPattern()
	files, err := FindFiles(job.InputDir, pattern)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No files found matching pattern '%s' in %s\n", pattern, job.InputDir)
		return summary, nil
	}

	fmt.Fprintf(w, "Found %d file(s) to convert\n", len(files))
	fmt.Fprintf(w, "Output directory: %s\n\n", outDir)

	c, err := newConverter()
	if err != nil {
		return summary, fmt.Errorf("initializing converter: %w", err)
	}

	summary.Total = len(files)
	for i, path := range files {
		fmt.Fprintf(w, "[%d/%d] Converting %s... ", i+1, len(files), filepath.Base(path))
		if err := convertOne(c, path, outDir); err != nil {
			if errors.Is(err, ErrNoContent) {
				fmt.Fprintf(w, "%s No content extracted\n", failMark)
			} else {
				fmt.Fprintf(w, "%s Error: %v\n", failMark, err)
			}
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "%s Success\n", okMark)
		summary.Successful++
	}

	WriteSummaryText(w, summary)
	return summary, nil
}

// convertOne runs c on path and writes <outDir>/<stem>.md.
func convertOne(c Converter, path, outDir string) error {
	content, err := c.Convert(path)
	if err != nil {
		return err
	}
	if content == "" {
		return ErrNoContent
	}
	return writeMarkdown(filepath.Join(outDir, Stem(path)+types.MarkdownExt), content)
}

// WriteSummaryText prints the human-readable summary block.
func WriteSummaryText(w io.Writer, s types.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Conversion complete!")
	fmt.Fprintf(w, "  Successful: %d\n", s.Successful)
	fmt.Fprintf(w, "  Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "  Total: %d\n", s.Total)
	fmt.Fprintln(w, rule)
}

// WriteSummary renders s in a machine-readable format. The text format is
// already printed by RunBatch, so it is a no-op here.
func WriteSummary(w io.Writer, s types.Summary, format types.SummaryFormat) error {
	switch types.SummaryFormat(strings.ToLower(string(format))) {
	case "", types.SummaryText:
		return nil
	case types.SummaryYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding summary as yaml: %w", err)
		}
		return enc.Close()
	case types.SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding summary as json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown summary format %q (want text, yaml, or json)", format)
	}
}
