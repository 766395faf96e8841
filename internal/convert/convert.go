// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns documents into Markdown files through a pluggable
// Converter backend, one file at a time or in batches over a directory.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc2md/pkg/types"
)

var (
	// ErrNotFound reports a missing input file.
	ErrNotFound = errors.New("not found")
	// ErrNoContent reports that a converter extracted nothing.
	ErrNoContent = errors.New("no content extracted")
)

// Converter transforms a document into Markdown text. An empty string with a
// nil error means the backend understood the file but found nothing to
// extract. Different backends (markitdown, native) implement this interface.
type Converter interface {
	// Convert reads the document at path and returns its Markdown content.
	Convert(path string) (string, error)
}

// Factory constructs a Converter. Callers invoke it once per run so that a
// batch reuses one instance and every single-file run gets a fresh one.
type Factory func() (Converter, error)

// Static returns a Factory that always yields c.
func Static(c Converter) Factory {
	return func() (Converter, error) { return c, nil }
}

// ConvertFile converts the single file named by req and writes the Markdown to
// req.OutputPath, or to DefaultOutputPath when that is empty. It returns the
// Markdown written. Progress is printed to w.
func ConvertFile(newConverter Factory, req types.ConversionRequest, w io.Writer) (string, error) {
	if _, err := os.Stat(req.InputPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("input file %w: %s", ErrNotFound, req.InputPath)
		}
		return "", fmt.Errorf("checking input %s: %w", req.InputPath, err)
	}

	c, err := newConverter()
	if err != nil {
		return "", fmt.Errorf("initializing converter: %w", err)
	}

	fmt.Fprintf(w, "Converting %s...\n", filepath.Base(req.InputPath))
	content, err := c.Convert(req.InputPath)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", req.InputPath, err)
	}
	if content == "" {
		return "", fmt.Errorf("%w: no content could be extracted from %s", ErrNoContent, req.InputPath)
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = DefaultOutputPath(req.InputPath)
	}
	if err := writeMarkdown(outPath, content); err != nil {
		return "", err
	}

	fmt.Fprintf(w, "✓ Converted successfully to: %s\n", outPath)
	return content, nil
}

// DefaultOutputPath replaces the extension of path with ".md". A path without
// an extension, including a bare dotfile, gets ".md" appended.
func DefaultOutputPath(path string) string {
	dir, name := filepath.Split(path)
	return dir + Stem(name) + types.MarkdownExt
}

// Stem returns the base name of path without its final extension. A leading
// dot does not start an extension, so ".notes" has stem ".notes".
func Stem(path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// writeMarkdown writes content as UTF-8, replacing invalid byte sequences and
// overwriting any existing file.
func writeMarkdown(path, content string) error {
	data := []byte(strings.ToValidUTF8(content, "\uFFFD"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
