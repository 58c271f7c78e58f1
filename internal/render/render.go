// Package render exports stored posts as markdown or standalone HTML.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"vidscribe/internal/store"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
)

// Markdown assembles a post into a single markdown document: title heading,
// summary, body, then the trailing metadata blocks that exist.
func Markdown(p *store.Post) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", p.Title)
	if p.Summary != "" {
		fmt.Fprintf(&sb, "> %s\n\n", p.Summary)
	}
	sb.WriteString(strings.TrimSpace(p.Content))
	sb.WriteString("\n")

	if len(p.KeyTakeaways) > 0 {
		sb.WriteString("\n## Key Takeaways\n\n")
		for _, kt := range p.KeyTakeaways {
			fmt.Fprintf(&sb, "- %s\n", kt)
		}
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&sb, "\n---\n\nTags: %s\n", strings.Join(p.Tags, ", "))
	}
	return sb.String()
}

// HTML renders the assembled markdown as a standalone HTML page with the
// meta description in the head.
func HTML(p *store.Post) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(p)), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(p.Title))
	if p.MetaDescription != "" {
		fmt.Fprintf(&sb, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(p.MetaDescription))
	}
	sb.WriteString("</head>\n<body>\n")
	sb.Write(body.Bytes())
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}
