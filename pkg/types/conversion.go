// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MarkdownExt is the extension of every file the converters write.
const MarkdownExt = ".md"

// DefaultPattern is the batch glob used when none is given. It matches every
// file with an extension; Markdown files are filtered out after globbing.
const DefaultPattern = "*.*"

// ConversionRequest pairs one input file with the path its Markdown is
// written to.
type ConversionRequest struct {
	// InputPath is the document to convert. It must exist.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is where the Markdown is written. When empty it is derived
	// from InputPath by replacing the extension with MarkdownExt.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
}

// BatchJob describes one batch-conversion run over a directory.
type BatchJob struct {
	// InputDir is the directory scanned for inputs (non-recursive unless the
	// pattern itself descends).
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the <stem>.md files. Empty means InputDir.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Pattern is a glob relative to InputDir. A single {a,b} group is
	// expanded. Empty means DefaultPattern.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// ResolvedOutputDir returns OutputDir, falling back to InputDir.
func (j BatchJob) ResolvedOutputDir() string {
	if j.OutputDir == "" {
		return j.InputDir
	}
	return j.OutputDir
}

// ResolvedPattern returns Pattern, falling back to DefaultPattern.
func (j BatchJob) ResolvedPattern() string {
	if j.Pattern == "" {
		return DefaultPattern
	}
	return j.Pattern
}

// Summary holds the outcome of a batch conversion run.
type Summary struct {
	Successful int `json:"successful" yaml:"successful"`
	Failed     int `json:"failed" yaml:"failed"`
	Total      int `json:"total" yaml:"total"`
}

// HasFailures reports whether any file failed conversion.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
