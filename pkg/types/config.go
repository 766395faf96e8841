package types

// ConversionBackend identifies the Document Converter implementation.
type ConversionBackend string

const (
	// BackendMarkitdown pipes files through the markitdown container image.
	BackendMarkitdown ConversionBackend = "markitdown"
	// BackendNative extracts text in-process for PDF, HTML, CSV and plain text.
	BackendNative ConversionBackend = "native"
)

// SummaryFormat selects how the batch summary is printed.
type SummaryFormat string

const (
	SummaryText SummaryFormat = "text"
	SummaryYAML SummaryFormat = "yaml"
	SummaryJSON SummaryFormat = "json"
)

// Config holds settings shared by both command-line programs. Values come
// from flags, DOC2MD_* environment variables, or doc2md.yaml.
type Config struct {
	// Backend selects the converter: markitdown or native.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the markitdown container image (default "markitdown:latest").
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Runtime is the container runtime: docker, podman, or auto.
	Runtime string `json:"runtime" yaml:"runtime" mapstructure:"runtime"`

	// Pattern is the default batch glob pattern.
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// SummaryFormat selects the batch summary rendering: text, yaml, or json.
	SummaryFormat SummaryFormat `json:"summary_format" yaml:"summary_format" mapstructure:"summary_format"`
}
