// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/doc2md/pkg/types"
)

// FindFiles returns the regular files under dir matching pattern, excluding
// Markdown files, sorted by path. The pattern is relative to dir.
//
// One brace group is expanded: "*.{pdf,docx}" globs "*.pdf" and "*.docx" and
// unions the results. Nested groups and ranges are not supported, and text
// after the closing brace is ignored.
func FindFiles(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = types.DefaultPattern
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var files []string

	for _, p := range expandBraces(pattern) {
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching pattern %q in %s: %w", p, dir, err)
		}
		for _, m := range matches {
			if strings.EqualFold(filepath.Ext(m), types.MarkdownExt) {
				continue
			}
			full := filepath.Join(dir, filepath.FromSlash(m))
			if seen[full] {
				continue
			}
			seen[full] = true
			files = append(files, full)
		}
	}

	sort.Strings(files)
	return files, nil
}

// expandBraces splits pattern on its first {a,b,...} group and returns
// prefix+alternative for each alternative, dropping whatever follows the
// closing brace. The returned patterns carry no unescaped braces, so the glob
// engine never expands a group on its own.
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{escapeBraces(pattern)}
	}
	closing := strings.IndexByte(pattern[open:], '}')
	if closing < 0 {
		return []string{escapeBraces(pattern)}
	}
	closing += open

	prefix := escapeBraces(pattern[:open])
	alts := strings.Split(pattern[open+1:closing], ",")

	out := make([]string, 0, len(alts))
	for _, alt := range alts {
		out = append(out, prefix+escapeBraces(alt))
	}
	return out
}

var braceEscaper = strings.NewReplacer("{", `\{`, "}", `\}`)

func escapeBraces(s string) string {
	return braceEscaper.Replace(s)
}
