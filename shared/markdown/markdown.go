// Package markdown renders board content into safe HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe(), html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AllowRelativeURLs(true)

	return &Renderer{md: md, policy: p}
}

// Render converts markdown to sanitized HTML. Raw HTML in the input is
// passed to the sanitizer, which strips anything outside the UGC policy.
func (r *Renderer) Render(text string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return r.policy.Sanitize(text)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String()))
}
