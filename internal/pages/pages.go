// Package pages serves the static project write-ups.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed content/*.md
var content embed.FS

//go:embed layout.html.tmpl
var layoutSource string

// Page is a rendered project document.
type Page struct {
	Slug  string
	Title string
	html  []byte
}

// Projects lists the served pages in route order.
var Projects = []struct {
	Slug  string
	Title string
}{
	{Slug: "breast-cancer", Title: "Breast Cancer Classification"},
	{Slug: "darwin-finches", Title: "Darwin Finches"},
}

// Load renders every project page. Any failure is a startup error.
func Load() ([]*Page, error) {
	return load(content)
}

func load(fsys embed.FS) ([]*Page, error) {
	layout, err := template.New("layout").Parse(layoutSource)
	if err != nil {
		return nil, fmt.Errorf("parse page layout: %w", err)
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	pages := make([]*Page, 0, len(Projects))
	for _, p := range Projects {
		src, err := fsys.ReadFile("content/" + p.Slug + ".md")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", p.Slug, err)
		}

		var body bytes.Buffer
		if err := md.Convert(src, &body); err != nil {
			return nil, fmt.Errorf("page %s: convert markdown: %w", p.Slug, err)
		}

		var out bytes.Buffer
		err = layout.Execute(&out, map[string]any{
			"Slug":  p.Slug,
			"Title": p.Title,
			"Body":  template.HTML(body.String()),
		})
		if err != nil {
			return nil, fmt.Errorf("page %s: render layout: %w", p.Slug, err)
		}
		pages = append(pages, &Page{Slug: p.Slug, Title: p.Title, html: out.Bytes()})
	}
	return pages, nil
}

// Path is the route the page is served on.
func (p *Page) Path() string { return "/projects/" + p.Slug }

// ServeHTTP writes the fixed document; the request is ignored.
func (p *Page) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(p.html)
}
