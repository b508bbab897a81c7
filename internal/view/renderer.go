// Package view projects catalog records and page state into HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"unicode/utf8"

	"github.com/somtogreat69/portfolio/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	md := content.NewMarkdown()
	funcs := template.FuncMap{
		"prose":   md.MustRender,
		"initial": initial,
	}
	tmpl, err := template.New("view").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full document.
func (r *Renderer) Page(w io.Writer, d PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", d)
}

// Overlay writes the detail overlay, or nothing when o is nil.
func (r *Renderer) Overlay(w io.Writer, o *Overlay) error {
	if o == nil {
		return nil
	}
	return r.tmpl.ExecuteTemplate(w, "overlay", o)
}

// SubmitButton writes the submit affordance.
func (r *Renderer) SubmitButton(w io.Writer, b Button) error {
	return r.tmpl.ExecuteTemplate(w, "submit", b)
}

// OverlayHTML renders the overlay to a string.
func (r *Renderer) OverlayHTML(o *Overlay) (string, error) {
	var buf bytes.Buffer
	if err := r.Overlay(&buf, o); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SubmitHTML renders the submit affordance to a string.
func (r *Renderer) SubmitHTML(b Button) (string, error) {
	var buf bytes.Buffer
	if err := r.SubmitButton(&buf, b); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Assets serves the embedded stylesheet and script.
func Assets() http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// initial returns the first letter of s, for the brand mark.
func initial(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(r)
}
