// ABOUTME: Tests for the .env loader covering parsing rules and no-clobber behavior.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDotEnv(t *testing.T) {
	src := strings.Join([]string{
		"# comment",
		"",
		"PLAIN=hello",
		`DOUBLE="quoted value"`,
		"SINGLE='single quoted'",
		"export EXPORTED=yes",
		"URL=https://example.com/?a=b",
		"MISMATCHED=\"open",
		"NOEQUALS",
		"=novalue",
	}, "\n")

	got := parseDotEnv(strings.NewReader(src))

	want := map[string]string{
		"PLAIN":      "hello",
		"DOUBLE":     "quoted value",
		"SINGLE":     "single quoted",
		"EXPORTED":   "yes",
		"URL":        "https://example.com/?a=b",
		"MISMATCHED": `"open`,
	}
	if len(got) != len(want) {
		t.Errorf("expected %d entries, got %d: %v", len(want), len(got), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestLoadDotEnvDoesNotClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TEST_MIMICSITE_KEEP=file\nTEST_MIMICSITE_NEW=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_MIMICSITE_KEEP", "env")
	t.Setenv("TEST_MIMICSITE_NEW", "")
	os.Unsetenv("TEST_MIMICSITE_NEW")

	loadDotEnv(path)

	if got := os.Getenv("TEST_MIMICSITE_KEEP"); got != "env" {
		t.Errorf("expected existing value to win, got %q", got)
	}
	if got := os.Getenv("TEST_MIMICSITE_NEW"); got != "file" {
		t.Errorf("expected value from file, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
}
