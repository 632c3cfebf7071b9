// ABOUTME: Minimal .env loader so MIMICSITE_* settings can live next to the binary during development.
// ABOUTME: Reads KEY=VALUE lines and never overrides variables already set in the environment.
package main

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// loadDotEnv applies the file at path to the process environment. A missing
// file is not an error.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	for key, value := range parseDotEnv(f) {
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

// parseDotEnv reads KEY=VALUE pairs. Blank lines, "#" comments and an
// optional "export " prefix are accepted; matching surrounding quotes are
// stripped from values.
func parseDotEnv(r io.Reader) map[string]string {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars
}

func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	if first, last := v[0], v[len(v)-1]; first == last && (first == '"' || first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
