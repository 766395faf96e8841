// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc2md/pkg/types"
)

// selectiveConverter returns different results per file name and records the
// order in which files were converted.
type selectiveConverter struct {
	outputs map[string]string
	errors  map[string]error
	order   []string
}

func (s *selectiveConverter) Convert(path string) (string, error) {
	name := filepath.Base(path)
	s.order = append(s.order, name)
	if err, ok := s.errors[name]; ok {
		return "", err
	}
	if out, ok := s.outputs[name]; ok {
		return out, nil
	}
	return "# " + name, nil
}

func setupDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		writeInput(t, dir, n)
	}
	return dir
}

func TestRunBatch_DefaultPatternSkipsMarkdown(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.docx", "c.md")
	conv := &selectiveConverter{}

	var log bytes.Buffer
	summary, err := RunBatch(types.BatchJob{InputDir: dir}, Static(conv), &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"a.pdf", "b.docx"}; strings.Join(conv.order, ",") != strings.Join(want, ",") {
		t.Errorf("converted %v, want %v", conv.order, want)
	}
	for _, name := range []string{"a.md", "b.md"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("expected output %s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "# ") {
			t.Errorf("%s content = %q", name, data)
		}
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "c.md")); string(got) != "fake c.md" {
		t.Errorf("c.md should be untouched, got %q", got)
	}
	if summary != (types.Summary{Successful: 2, Failed: 0, Total: 2}) {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunBatch_BracePattern(t *testing.T) {
	dir := setupDir(t, "x.pdf", "y.docx", "z.txt")
	conv := &selectiveConverter{}

	summary, err := RunBatch(types.BatchJob{InputDir: dir, Pattern: "*.{pdf,docx}"}, Static(conv), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(conv.order, ","); got != "x.pdf,y.docx" {
		t.Errorf("converted %s, want x.pdf,y.docx", got)
	}
	if summary.Total != 2 {
		t.Errorf("total = %d, want 2", summary.Total)
	}
	if _, err := os.Stat(filepath.Join(dir, "z.md")); err == nil {
		t.Error("z.txt should not have been converted")
	}
}

func TestRunBatch_PartialFailure(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf", "c.pdf")
	out := filepath.Join(t.TempDir(), "out")
	conv := &selectiveConverter{
		errors: map[string]error{"b.pdf": errors.New("bad pdf")},
	}

	var log bytes.Buffer
	summary, err := RunBatch(types.BatchJob{InputDir: dir, OutputDir: out}, Static(conv), &log)
	if err != nil {
		t.Fatalf("per-file failures must not fail the batch: %v", err)
	}

	if summary.Successful != 2 {
		t.Errorf("successful = %d, want 2", summary.Successful)
	}
	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if !summary.HasFailures() {
		t.Error("HasFailures should be true")
	}

	output := log.String()
	for _, want := range []string{
		"[1/3] Converting a.pdf...",
		"[2/3] Converting b.pdf...",
		"Error: bad pdf",
		"Conversion complete!",
		"  Successful: 2",
		"  Failed: 1",
		"  Total: 3",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "b.md")); err == nil {
		t.Error("failed file should not produce output")
	}
	if _, err := os.Stat(filepath.Join(out, "c.md")); err != nil {
		t.Error("batch should continue after a failure")
	}
}

func TestRunBatch_NoContent(t *testing.T) {
	dir := setupDir(t, "scan.pdf", "text.pdf")
	conv := &selectiveConverter{outputs: map[string]string{"scan.pdf": ""}}

	var log bytes.Buffer
	summary, err := RunBatch(types.BatchJob{InputDir: dir}, Static(conv), &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary != (types.Summary{Successful: 1, Failed: 1, Total: 2}) {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(log.String(), "No content extracted") {
		t.Errorf("output should report no content:\n%s", log.String())
	}
}

func TestRunBatch_NativePDF(t *testing.T) {
	dir := t.TempDir()
	for name, pages := range map[string][]string{
		"text.pdf": {"Alpha", "Beta"},
		"scan.pdf": {""},
	} {
		if err := os.WriteFile(filepath.Join(dir, name), buildPDF(t, pages), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var log bytes.Buffer
	summary, err := RunBatch(types.BatchJob{InputDir: dir, Pattern: "*.pdf"}, Static(NewNativeConverter(nil)), &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary != (types.Summary{Successful: 1, Failed: 1, Total: 2}) {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(log.String(), "scan.pdf... [X] No content extracted") {
		t.Errorf("scan.pdf should report no content:\n%s", log.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "text.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Alpha\n\nBeta" {
		t.Errorf("text.md = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "scan.md")); err == nil {
		t.Error("scan.md should not be written")
	}
}

func TestRunBatch_AllFailStillSummarizes(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf")
	conv := &fakeConverter{err: errors.New("unsupported")}

	var log bytes.Buffer
	summary, err := RunBatch(types.BatchJob{InputDir: dir}, Static(conv), &log)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 2 || summary.Successful != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(log.String(), "Conversion complete!") {
		t.Error("summary block should print even when every file fails")
	}
}

func TestRunBatch_DeterministicOrder(t *testing.T) {
	dir := setupDir(t, "b.pdf", "a.pdf")
	conv := &selectiveConverter{}

	if _, err := RunBatch(types.BatchJob{InputDir: dir}, Static(conv), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(conv.order, ","); got != "a.pdf,b.pdf" {
		t.Errorf("order = %s, want a.pdf,b.pdf", got)
	}
}

func TestRunBatch_ReusesOneConverter(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf", "c.pdf")
	built := 0
	conv := &selectiveConverter{}
	factory := func() (Converter, error) {
		built++
		return conv, nil
	}

	if _, err := RunBatch(types.BatchJob{InputDir: dir}, factory, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if built != 1 {
		t.Errorf("factory called %d times, want 1", built)
	}
	if len(conv.order) != 3 {
		t.Errorf("converted %d files, want 3", len(conv.order))
	}
}

func TestRunBatch_Validation(t *testing.T) {
	t.Run("missing input directory", func(t *testing.T) {
		base := t.TempDir()
		out := filepath.Join(base, "out")
		_, err := RunBatch(types.BatchJob{InputDir: filepath.Join(base, "missing"), OutputDir: out},
			Static(&fakeConverter{}), &bytes.Buffer{})
		if !errors.Is(err, ErrDirNotFound) {
			t.Fatalf("err = %v, want ErrDirNotFound", err)
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("error %q should contain \"not found\"", err)
		}
		if _, statErr := os.Stat(out); statErr == nil {
			t.Error("output directory must not be created when input is missing")
		}
	})

	t.Run("input is a file", func(t *testing.T) {
		dir := setupDir(t, "a.pdf")
		_, err := RunBatch(types.BatchJob{InputDir: filepath.Join(dir, "a.pdf")},
			Static(&fakeConverter{}), &bytes.Buffer{})
		if !errors.Is(err, ErrNotDirectory) {
			t.Fatalf("err = %v, want ErrNotDirectory", err)
		}
	})

	t.Run("converter construction fails", func(t *testing.T) {
		dir := setupDir(t, "a.pdf")
		factory := func() (Converter, error) { return nil, errors.New("markitdown image not available") }
		_, err := RunBatch(types.BatchJob{InputDir: dir}, factory, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "markitdown image not available") {
			t.Fatalf("err = %v, want construction error", err)
		}
	})
}

func TestRunBatch_NoMatches(t *testing.T) {
	dir := setupDir(t, "only.md")
	out := filepath.Join(t.TempDir(), "nested", "out")
	factory := func() (Converter, error) {
		t.Fatal("converter should not be constructed when nothing matches")
		return nil, nil
	}

	var log bytes.Buffer
	summary, err := RunBatch(types.BatchJob{InputDir: dir, OutputDir: out}, factory, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != (types.Summary{}) {
		t.Errorf("summary = %+v, want zero", summary)
	}
	if !strings.Contains(log.String(), "No files found matching pattern '*.*'") {
		t.Errorf("unexpected output: %q", log.String())
	}
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		t.Error("explicit output directory should be created with its parents")
	}
}

func TestRunBatch_WriteFailureCounted(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf")
	// A directory named a.md blocks the write of a.pdf's output.
	if err := os.Mkdir(filepath.Join(dir, "a.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	summary, err := RunBatch(types.BatchJob{InputDir: dir}, Static(&selectiveConverter{}), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary != (types.Summary{Successful: 1, Failed: 1, Total: 2}) {
		t.Errorf("summary = %+v", summary)
	}
}

func TestWriteSummary(t *testing.T) {
	s := types.Summary{Successful: 2, Failed: 1, Total: 3}

	t.Run("text is a no-op", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSummary(&buf, s, types.SummaryText); err != nil {
			t.Fatal(err)
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSummary(&buf, s, types.SummaryYAML); err != nil {
			t.Fatal(err)
		}
		var got types.Summary
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not yaml: %v\n%s", err, buf.String())
		}
		if got != s {
			t.Errorf("decoded %+v, want %+v", got, s)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSummary(&buf, s, "JSON"); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"failed": 1`) {
			t.Errorf("unexpected json %s", buf.String())
		}
		var got types.Summary
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Errorf("decoded %+v, want %+v", got, s)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := WriteSummary(&bytes.Buffer{}, s, "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
