package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ollama/pretokenize"
	"github.com/ollama/pretokenize/envconfig"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var b bytes.Buffer
	root := NewCLI()
	root.SetOut(&b)
	root.SetErr(&b)
	root.SetArgs(args)
	if err := root.ExecuteContext(t.Context()); err != nil {
		t.Fatal(err)
	}

	return b.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return p
}

func TestSplit(t *testing.T) {
	p := writeFile(t, "input.txt", "Hello World!")

	got := run(t, "split", p)
	want := "\"Hello\"\n\" World\"\n\"!\"\n"
	if got != want {
		t.Errorf("split = %q, want %q", got, want)
	}
}

func TestSplitOffsets(t *testing.T) {
	p := writeFile(t, "input.txt", "Hello World!")

	got := run(t, "split", "--offsets", p)
	for _, want := range []string{"START", `"Hello"`, `" World"`, `"!"`, "11", "12"} {
		if !strings.Contains(got, want) {
			t.Errorf("offsets output missing %q:\n%s", want, got)
		}
	}
}

func TestSplitInvalidUTF8(t *testing.T) {
	p := writeFile(t, "bad.bin", "\xff\xfe")

	root := NewCLI()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"split", p})
	if err := root.ExecuteContext(t.Context()); !errors.Is(err, pretokenize.ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
}

func TestStats(t *testing.T) {
	a := writeFile(t, "a.txt", "one two three")
	b := writeFile(t, "b.txt", "four five")

	got := run(t, "stats", a, b)
	for _, want := range []string{"FILE", a, b, "total", "5", "22 B"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}
}

func TestEnv(t *testing.T) {
	got := run(t, "env")
	for _, want := range []string{"PRETOK_DEBUG", "PRETOK_TRACE", "PRETOK_NUM_PARALLEL"} {
		if !strings.Contains(got, want) {
			t.Errorf("env output missing %q:\n%s", want, got)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prev, had := os.LookupEnv("PRETOK_NUM_PARALLEL")
	os.Unsetenv("PRETOK_NUM_PARALLEL")
	prevParallel := envconfig.NumParallel
	t.Cleanup(func() {
		if had {
			os.Setenv("PRETOK_NUM_PARALLEL", prev)
		} else {
			os.Unsetenv("PRETOK_NUM_PARALLEL")
		}
		envconfig.NumParallel = prevParallel
	})

	// no .env file yet
	if err := LoadDotEnv(); err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Join(home, ".pretok"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".pretok", ".env"), []byte("PRETOK_NUM_PARALLEL=7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(); err != nil {
		t.Fatal(err)
	}

	if envconfig.NumParallel != 7 {
		t.Errorf("NumParallel = %d, want 7", envconfig.NumParallel)
	}
}
