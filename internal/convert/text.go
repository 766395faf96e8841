// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newUTF8Decoder decodes UTF-8 by default and honours a UTF-8 or UTF-16 byte
// order mark, stripping it from the output.
func newUTF8Decoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

// convertPlainText returns the file contents decoded to UTF-8.
func convertPlainText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, newUTF8Decoder()))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// convertDelimited renders a CSV or TSV file as a Markdown table whose first
// record is the header row. Short rows are padded to the widest row.
func convertDelimited(path string, comma rune) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, newUTF8Decoder()))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	width := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		width = max(width, len(rec))
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return "", nil
	}

	var b strings.Builder
	writeRow(&b, rows[0], width)
	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep, width)
	for _, row := range rows[1:] {
		writeRow(&b, row, width)
	}
	return b.String(), nil
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func writeRow(b *strings.Builder, cells []string, width int) {
	b.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = cellEscaper.Replace(strings.TrimSpace(cells[i]))
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
