// ABOUTME: HTTP server for the MedData Query landing site behind a single chi router.
// ABOUTME: Serves home, download, contact, a release JSON endpoint, health, static assets and a 404 page.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/2389-research/mimicsite/config"
	"github.com/2389-research/mimicsite/releases"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Server is the site HTTP server.
type Server struct {
	templates    *TemplateEngine
	content      *ContentStore
	releases     releases.Fetcher
	site         config.Site
	fetchTimeout time.Duration
	router       chi.Router
	addr         string
}

// ServerConfig holds the configuration for the site server.
type ServerConfig struct {
	Addr         string           // listen address (default: "127.0.0.1:3000")
	Site         config.Site      // branding and navigation
	Releases     releases.Fetcher // source of the latest release
	FetchTimeout time.Duration    // bound on the release lookup per request
}

// NewServer creates a Server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	if cfg.Releases == nil {
		return nil, errors.New("releases fetcher must not be nil")
	}
	if cfg.Site.Brand == "" {
		cfg.Site = config.DefaultSite()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = releases.DefaultTimeout
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}
	content, err := NewContentStore()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	s := &Server{
		templates:    tmpl,
		content:      content,
		releases:     cfg.Releases,
		site:         cfg.Site,
		fetchTimeout: cfg.FetchTimeout,
		addr:         cfg.Addr,
	}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(webRequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/", s.handleContentPage("home"))
	r.Get("/contact", s.handleContentPage("contact"))
	r.Get("/download", s.handleDownload)
	r.Get("/api/release", s.handleReleaseAPI)
	r.Get("/health", s.handleHealth)

	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		log.Printf("WARNING: failed to create static sub-FS: %v", err)
	} else {
		r.Handle("/static/*", s.staticHandler(staticFS))
	}

	r.NotFound(s.handleNotFound)
	return r
}

// handleContentPage renders one of the static Markdown pages.
func (s *Server) handleContentPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := s.content.Page(slug)
		if !ok {
			s.handleNotFound(w, r)
			return
		}
		data := PageData{
			Title:      page.Title,
			Site:       s.site,
			ActivePath: page.Path,
			Page:       page,
		}
		s.render(w, http.StatusOK, "page.html", data)
	}
}

// handleDownload looks up the latest release and renders the platform
// buttons. A failed lookup renders the unset state: no version and three
// disabled buttons.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	downloads := s.latestDownloads(r)
	view := NewDownloadView(downloads, releases.DetectOS(platformString(r)))

	data := PageData{
		Title:      "Download",
		Site:       s.site,
		ActivePath: "/download",
		Download:   &view,
	}
	s.render(w, http.StatusOK, "download.html", data)
}

// releaseResponse is the JSON shape of /api/release.
type releaseResponse struct {
	releases.Downloads
	PreferredOS releases.OS `json:"preferred_os,omitempty"`
}

// handleReleaseAPI returns the resolved downloads as JSON, or 503 when no
// release is available.
func (s *Server) handleReleaseAPI(w http.ResponseWriter, r *http.Request) {
	downloads := s.latestDownloads(r)
	if downloads.Empty() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "release information unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, releaseResponse{
		Downloads:   downloads,
		PreferredOS: releases.DetectOS(platformString(r)),
	})
}

// staticHandler serves embedded files. Directories and missing files get
// the site's 404 page instead of a listing.
func (s *Server) staticHandler(fsys fs.FS) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/static/")
		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			s.handleNotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleNotFound renders the 404 page for every unmatched route.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title: "Not Found",
		Site:  s.site,
	}
	s.render(w, http.StatusNotFound, "not_found.html", data)
}

// latestDownloads fetches the release within the per-request timeout. Errors
// are logged and swallowed.
func (s *Server) latestDownloads(r *http.Request) releases.Downloads {
	ctx, cancel := context.WithTimeout(r.Context(), s.fetchTimeout)
	defer cancel()

	rel, err := s.releases.Latest(ctx)
	if err != nil {
		log.Printf("release lookup failed id=%s err=%v", RequestIDFromContext(r.Context()), err)
		return releases.Downloads{}
	}
	return releases.Resolve(rel)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data PageData) {
	if err := s.templates.Render(w, status, name, data); err != nil {
		log.Printf("error rendering %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding json response: %v", err)
	}
}
