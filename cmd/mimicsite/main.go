// ABOUTME: CLI entrypoint for the MedData Query site: serves the website or prints the latest release.
// ABOUTME: Wires config, the release fetcher stack (client, snapshots, cache) and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/2389-research/mimicsite/config"
	"github.com/2389-research/mimicsite/releases"
	"github.com/2389-research/mimicsite/web"
)

var version = "dev"

// serveOptions holds the serve-mode flags. Empty values defer to MIMICSITE_* env.
type serveOptions struct {
	bind        string
	port        int
	allowRemote bool
	siteFile    string
	snapshotDB  string
	showVersion bool
}

func main() {
	loadDotEnv(".env")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to the releases subcommand or the web server.
// Returns an exit code: 0 for success, 1 for failure, 2 for usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "releases" {
		return runReleases(args[1:], stdout, stderr)
	}

	opts, err := parseServeFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "mimicsite %s\n", version)
		return 0
	}

	cfg, err := config.FromEnv(opts.configOptions()...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return runServer(cfg, stderr)
}

// parseServeFlags parses serve-mode flags.
func parseServeFlags(args []string, stderr io.Writer) (serveOptions, error) {
	var opts serveOptions

	fs := flag.NewFlagSet("mimicsite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.bind, "bind", "", "Listen address (default: $MIMICSITE_BIND or 127.0.0.1:3000)")
	fs.IntVar(&opts.port, "port", 0, "Listen on 127.0.0.1:<port>; ignored when -bind is set")
	fs.BoolVar(&opts.allowRemote, "allow-remote", false, "Allow binding to non-loopback addresses")
	fs.StringVar(&opts.siteFile, "site", "", "YAML site file with brand and navigation overrides")
	fs.StringVar(&opts.snapshotDB, "snapshot-db", "", "SQLite file for release snapshots")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	fs.Usage = func() {
		printHelp(stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument %q\n", fs.Arg(0))
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts, nil
}

// configOptions translates flags into config overrides.
func (o serveOptions) configOptions() []config.Option {
	bind := o.bind
	if bind == "" && o.port > 0 {
		bind = fmt.Sprintf("127.0.0.1:%d", o.port)
	}
	return []config.Option{
		config.WithBind(bind),
		config.WithAllowRemote(o.allowRemote),
		config.WithSiteFile(o.siteFile),
		config.WithSnapshotDB(o.snapshotDB),
	}
}

// buildFetcher stacks the release client, optional snapshot fallback and the
// TTL cache. The returned close func releases the snapshot database.
func buildFetcher(cfg *config.Config) (releases.Fetcher, func() error, error) {
	client := releases.NewClient(cfg.ClientConfig("mimicsite/" + version))

	var fetcher releases.Fetcher = client
	closeFn := func() error { return nil }

	if cfg.SnapshotDB != "" {
		store, err := releases.OpenSnapshotStore(cfg.SnapshotDB)
		if err != nil {
			return nil, nil, fmt.Errorf("opening snapshot store: %w", err)
		}
		fetcher = releases.NewSnapshotFetcher(client, store, client.Repo())
		closeFn = store.Close
	}

	return releases.NewCache(fetcher, cfg.CacheTTL), closeFn, nil
}

// buildServer creates the web server for cfg.
func buildServer(cfg *config.Config) (*web.Server, func() error, error) {
	fetcher, closeFn, err := buildFetcher(cfg)
	if err != nil {
		return nil, nil, err
	}
	srv, err := web.NewServer(web.ServerConfig{
		Addr:         cfg.Bind,
		Site:         cfg.Site,
		Releases:     fetcher,
		FetchTimeout: cfg.FetchTimeout,
	})
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return srv, closeFn, nil
}

// runServer serves the site until SIGINT or SIGTERM.
func runServer(cfg *config.Config, stderr io.Writer) int {
	srv, closeFn, err := buildServer(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Printf("closing snapshot store: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(stderr, "\nInterrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Printf("mimicsite %s listening addr=%s repo=%s snapshots=%t", version, srv.Addr(), cfg.Site.Repo, cfg.SnapshotDB != "")
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
