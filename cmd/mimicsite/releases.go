// ABOUTME: "mimicsite releases" subcommand: fetches the latest release and prints per-platform links.
// ABOUTME: Uses the same client and asset resolution as the download page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/2389-research/mimicsite/config"
	"github.com/2389-research/mimicsite/releases"
)

// runReleases implements the releases subcommand.
func runReleases(args []string, stdout, stderr io.Writer) int {
	var (
		platform string
		repo     string
		timeout  time.Duration
	)

	fs := flag.NewFlagSet("mimicsite releases", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&platform, "os", runtime.GOOS, "Platform to highlight (windows, macos, linux)")
	fs.StringVar(&repo, "repo", "", "Repository as owner/name (default: site repo)")
	fs.DurationVar(&timeout, "timeout", 0, "Fetch timeout (default: $MIMICSITE_FETCH_TIMEOUT or 10s)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	cc := cfg.ClientConfig("mimicsite/" + version)
	if repo != "" {
		cc.Repo = repo
	}
	if timeout > 0 {
		cc.Timeout = timeout
	}
	client := releases.NewClient(cc)

	ctx, cancel := context.WithTimeout(context.Background(), cc.Timeout)
	defer cancel()

	rel, err := client.Latest(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	preferred := releases.DetectOS(releases.NormalizePlatform(platform))
	fmt.Fprintln(stdout, renderReleaseTable(client.Repo(), releases.Resolve(rel), preferred))
	return 0
}
