// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// formatFn extracts Markdown from the file at path.
type formatFn func(path string) (string, error)

// NativeConverter extracts Markdown in-process, dispatching on the file
// extension. It needs no external tools, at the cost of supporting fewer
// formats than markitdown.
type NativeConverter struct {
	logger   *logrus.Logger
	handlers map[string]formatFn
}

// NewNativeConverter returns a converter for PDF, HTML, CSV/TSV and plain
// text files. A nil logger discards diagnostics.
func NewNativeConverter(logger *logrus.Logger) *NativeConverter {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	html := newHTMLConverter()
	n := &NativeConverter{
		logger: logger,
		handlers: map[string]formatFn{
			".pdf":   convertPDF,
			".html":  html.convertFile,
			".htm":   html.convertFile,
			".xhtml": html.convertFile,
			".csv":   func(p string) (string, error) { return convertDelimited(p, ',') },
			".tsv":   func(p string) (string, error) { return convertDelimited(p, '\t') },
		},
	}
	for _, ext := range []string{".txt", ".text", ".log", ".json", ".xml", ".yaml", ".yml", ".rst"} {
		n.handlers[ext] = convertPlainText
	}
	return n
}

// Extensions lists the file extensions the converter accepts, sorted.
func (n *NativeConverter) Extensions() []string {
	exts := make([]string, 0, len(n.handlers))
	for ext := range n.handlers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Convert extracts Markdown from path based on its extension.
func (n *NativeConverter) Convert(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := n.handlers[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q (native backend accepts %s)", ext, strings.Join(n.Extensions(), " "))
	}

	n.logger.WithFields(logrus.Fields{
		"path":   path,
		"format": strings.TrimPrefix(ext, "."),
	}).Debug("native conversion")

	out, err := fn(path)
	if err != nil {
		return "", err
	}

	n.logger.WithFields(logrus.Fields{
		"path":            path,
		"markdown_length": len(out),
	}).Debug("native conversion completed")
	return out, nil
}
