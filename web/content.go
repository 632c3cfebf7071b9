// ABOUTME: ContentStore loads the static Markdown pages (home, contact) with goldmark-meta front matter.
// ABOUTME: Bodies are rendered once at startup with goldmark; raw HTML in the source is not passed through.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

//go:embed content/*.md
var contentFS embed.FS

// Page is a rendered static content page.
type Page struct {
	Slug  string
	Title string
	Path  string
	Body  template.HTML
}

// ContentStore holds the rendered static pages, keyed by slug.
type ContentStore struct {
	pages map[string]*Page
}

// NewContentStore loads the pages embedded in the binary.
func NewContentStore() (*ContentStore, error) {
	return LoadContent(contentFS, "content")
}

// LoadContent parses every *.md file in dir of fsys. The slug is the file
// name without extension.
func LoadContent(fsys fs.FS, dir string) (*ContentStore, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	store := &ContentStore{pages: make(map[string]*Page)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		src, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		if slug == "" {
			continue
		}
		page, err := parsePage(md, slug, src)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		store.pages[slug] = page
	}
	return store, nil
}

// Page returns the page for slug.
func (c *ContentStore) Page(slug string) (*Page, bool) {
	p, ok := c.pages[slug]
	return p, ok
}

func parsePage(md goldmark.Markdown, slug string, src []byte) (*Page, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer
	if err := md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	fm, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	page := &Page{
		Slug:  slug,
		Title: metaString(fm, "title"),
		Path:  metaString(fm, "path"),
		Body:  template.HTML(buf.String()),
	}
	if page.Title == "" {
		page.Title = strings.ToUpper(slug[:1]) + slug[1:]
	}
	if page.Path == "" {
		page.Path = "/" + slug
	}
	return page, nil
}

// metaString returns the string value of key, or "" when it is absent or
// not a string.
func metaString(fm map[string]any, key string) string {
	s, _ := fm[key].(string)
	return s
}
