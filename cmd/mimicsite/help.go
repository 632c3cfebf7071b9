// ABOUTME: Help display for the mimicsite CLI with usage, flags, examples and environment status.
package main

import (
	"fmt"
	"io"
	"os"
)

// printHelp writes a formatted help message to w.
func printHelp(w io.Writer, ver string) {
	fmt.Fprintf(w, "mimicsite %s — MedData Query landing site\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mimicsite [flags]                   Serve the website")
	fmt.Fprintln(w, "  mimicsite releases [-os <os>]       Print the latest release download links")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -bind <addr>          Listen address (default: 127.0.0.1:3000)")
	fmt.Fprintln(w, "  -port <port>          Shorthand for -bind 127.0.0.1:<port>")
	fmt.Fprintln(w, "  -allow-remote         Allow non-loopback listen addresses")
	fmt.Fprintln(w, "  -site <file>          YAML site file (brand, product_name, repo, nav)")
	fmt.Fprintln(w, "  -snapshot-db <file>   Keep release snapshots in SQLite and serve them when the API fails")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Releases Flags:")
	fmt.Fprintln(w, "  -os <os>              Platform to highlight: windows, macos, linux")
	fmt.Fprintln(w, "  -repo <owner/name>    Repository to query")
	fmt.Fprintln(w, "  -timeout <dur>        Fetch timeout")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  mimicsite -port 8080")
	fmt.Fprintln(w, "  mimicsite -bind 0.0.0.0:80 -allow-remote -snapshot-db /var/lib/mimicsite/releases.db")
	fmt.Fprintln(w, "  mimicsite releases -os linux")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  MIMICSITE_BIND           %s\n", envStatus("MIMICSITE_BIND"))
	fmt.Fprintf(w, "  MIMICSITE_ALLOW_REMOTE   %s\n", envStatus("MIMICSITE_ALLOW_REMOTE"))
	fmt.Fprintf(w, "  MIMICSITE_GITHUB_TOKEN   %s\n", envStatus("MIMICSITE_GITHUB_TOKEN"))
	fmt.Fprintf(w, "  MIMICSITE_CACHE_TTL      %s\n", envStatus("MIMICSITE_CACHE_TTL"))
	fmt.Fprintf(w, "  MIMICSITE_FETCH_TIMEOUT  %s\n", envStatus("MIMICSITE_FETCH_TIMEOUT"))
	fmt.Fprintf(w, "  MIMICSITE_SNAPSHOT_DB    %s\n", envStatus("MIMICSITE_SNAPSHOT_DB"))
	fmt.Fprintf(w, "  MIMICSITE_SITE_FILE      %s\n", envStatus("MIMICSITE_SITE_FILE"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Without a token the releases API allows 60 requests per hour per IP.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
