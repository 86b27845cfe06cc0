package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdprep"
	"github.com/alnah/go-mdprep/internal/config"
	"github.com/alnah/go-mdprep/internal/yamlutil"
)

const sampleDoc = "## Apples\n\nApples are good.<<Index: fruit>>[[Grown in orchards.]]\n\n## Notes\n\n## Index\n"

// testEnv returns an environment with captured output and a real pool.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Stdin:   strings.NewReader(stdin),
		Stdout:  stdout,
		Stderr:  stderr,
		NoColor: true,
		NewPool: newPreparerPool,
	}, stdout, stderr
}

func mustTransform(t *testing.T, md string) string {
	t.Helper()
	out, err := mdprep.Transform(md)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	return out
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(sampleDoc)
	if code := run(context.Background(), []string{"-q", "-"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	if got, want := stdout.String(), mustTransform(t, sampleDoc); got != want {
		t.Errorf("stdout mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestRun_StdinHTML(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv("# Hi\n")
	code := run(context.Background(), []string{"-f", "html", "--title", "Greeting", "-"}, env)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "<title>Greeting</title>") {
		t.Errorf("html output missing title:\n%s", stdout)
	}
}

func TestRun_StdinPDFNeedsOutput(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("# Hi\n")
	code := run(context.Background(), []string{"-f", "pdf", "-"}, env)
	if code != ExitUsage {
		t.Errorf("run() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: use --output") {
		t.Errorf("stderr missing hint:\n%s", stderr)
	}
}

func TestRun_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "in", "a.md"), sampleDoc)
	writeFile(t, filepath.Join(dir, "in", "part", "b.md"), "# B\n")
	out := filepath.Join(dir, "out")

	env, _, stderr := testEnv("")
	code := run(context.Background(), []string{"-w", "2", "-o", out, filepath.Join(dir, "in")}, env)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}

	got, err := os.ReadFile(filepath.Join(out, "a.prepared.md"))
	if err != nil {
		t.Fatal(err)
	}
	if want := mustTransform(t, sampleDoc); string(got) != want {
		t.Errorf("a.prepared.md mismatch:\ngot:  %q\nwant: %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(out, "part", "b.prepared.md")); err != nil {
		t.Errorf("nested output not written: %v", err)
	}
	if !strings.Contains(stderr.String(), "succeeded=2") {
		t.Errorf("stderr missing summary:\n%s", stderr)
	}
}

func TestRun_ConfigAndFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mdprep.yaml")
	writeFile(t, cfgPath, "output:\n  format: html\nindex:\n  sort: fold\n")

	env, stdout, stderr := testEnv("")
	code := run(context.Background(), []string{"-c", cfgPath, "--index-match", "exact", "--print-config"}, env)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}

	var cfg config.Config
	if err := yamlutil.DecodeStrict(stdout.Bytes(), &cfg); err != nil {
		t.Fatalf("decoding printed config: %v\n%s", err, stdout)
	}
	if cfg.Output.Format != "html" || cfg.Index.Sort != "fold" || cfg.Index.Match != "exact" {
		t.Errorf("merged config = %+v", cfg)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	writeFile(t, doc, "# Doc\n")
	txt := filepath.Join(dir, "doc.txt")
	writeFile(t, txt, "text")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{"no input", []string{}, ExitIO, "no input specified"},
		{"two inputs", []string{doc, doc}, ExitUsage, "expected one input"},
		{"unknown flag", []string{"--bogus"}, ExitUsage, "invalid usage"},
		{"bad format", []string{"-f", "docx", doc}, ExitUsage, "valid values: markdown, html, pdf"},
		{"bad sort", []string{"--index-sort", "random", doc}, ExitUsage, "index.sort"},
		{"bad language", []string{"--index-sort", "locale", "--lang", "not a tag!", doc}, ExitUsage, "BCP 47"},
		{"bad timeout", []string{"-t", "soon", doc}, ExitUsage, "--timeout"},
		{"too many workers", []string{"-w", "99", doc}, ExitUsage, "batch.workers"},
		{"missing file", []string{filepath.Join(dir, "nope.md")}, ExitIO, "nope.md"},
		{"wrong extension", []string{txt}, ExitUsage, ".md or .markdown"},
		{"missing config file", []string{"-c", filepath.Join(dir, "nope.yaml"), doc}, ExitUsage, "hint: use --config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv("")
			code := run(context.Background(), tt.args, env)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d; stderr: %s", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr.String(), tt.wantMsg) {
				t.Errorf("stderr should contain %q, got:\n%s", tt.wantMsg, stderr)
			}
		})
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv("")
	if code := run(context.Background(), []string{"--help"}, env); code != ExitSuccess {
		t.Errorf("--help exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage: mdprep") {
		t.Errorf("--help output = %q", stdout)
	}

	env, stdout, _ = testEnv("")
	if code := run(context.Background(), []string{"--version"}, env); code != ExitSuccess {
		t.Errorf("--version exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "mdprep "+Version) {
		t.Errorf("--version output = %q", stdout)
	}
}

func TestRun_BatchFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A\n")
	writeFile(t, filepath.Join(dir, "b.md"), "# B\n")

	env, _, stderr := testEnv("")
	failing := &mockPool{prep: &mockPreparer{err: errors.New("boom")}, size: 1}
	env.NewPool = func(int, ...mdprep.Option) (Pool, error) { return failing, nil }

	code := run(context.Background(), []string{dir}, env)
	if code != ExitGeneral {
		t.Errorf("run() = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stderr.String(), "2 of 2") {
		t.Errorf("stderr missing failure count:\n%s", stderr)
	}
	if !failing.closed {
		t.Error("pool was not closed")
	}
}

func TestRun_SetMaxProcs(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("# A\n")
	called := false
	env.SetMaxProcs = func(func(string, ...any)) { called = true }

	if code := run(context.Background(), []string{"-"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d", code)
	}
	if !called {
		t.Error("SetMaxProcs was not called")
	}
}
