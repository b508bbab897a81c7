// Package content turns catalog prose into safe HTML fragments.
package content

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Markdown converts markdown prose to sanitized HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a converter with GFM and class-based code highlighting.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts src. Raw HTML in the source survives goldmark and is then
// stripped by the sanitizer, so the result is safe to embed in a page.
func (m *Markdown) Render(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	cleaned := sanitizer().SanitizeBytes(buf.Bytes())
	return template.HTML(strings.TrimSpace(string(cleaned))), nil
}

// MustRender is Render for trusted built-in content; on error the source is
// returned escaped.
func (m *Markdown) MustRender(src string) template.HTML {
	out, err := m.Render(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("pre", "code", "span")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}
