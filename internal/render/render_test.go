package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidscribe/internal/store"
)

func fullPost() *store.Post {
	return &store.Post{
		Title:           "Understanding Goroutines",
		Content:         "## Scheduling\n\nGoroutines are cheap.",
		Summary:         "A tour of the Go scheduler.",
		Tags:            []string{"go", "concurrency"},
		MetaDescription: `Learn about goroutines & the "scheduler".`,
		KeyTakeaways:    []string{"Goroutines are multiplexed onto OS threads."},
	}
}

func TestMarkdown_FullPost(t *testing.T) {
	out := Markdown(fullPost())

	assert.True(t, strings.HasPrefix(out, "# Understanding Goroutines\n"))
	assert.Contains(t, out, "> A tour of the Go scheduler.")
	assert.Contains(t, out, "## Scheduling")
	assert.Contains(t, out, "## Key Takeaways")
	assert.Contains(t, out, "- Goroutines are multiplexed onto OS threads.")
	assert.Contains(t, out, "Tags: go, concurrency")
}

func TestMarkdown_MinimalPost(t *testing.T) {
	out := Markdown(&store.Post{Title: "T", Content: "body"})

	assert.Equal(t, "# T\n\nbody\n", out)
	assert.NotContains(t, out, "Key Takeaways")
	assert.NotContains(t, out, "Tags:")
}

func TestHTML_RendersMarkdownAndEscapesMeta(t *testing.T) {
	out, err := HTML(fullPost())
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Understanding Goroutines</title>")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "Goroutines are cheap.")
	assert.Contains(t, out, "&amp;")
	assert.NotContains(t, out, `content="Learn about goroutines & the "scheduler".">`)
}

func TestHTML_GFMTable(t *testing.T) {
	p := &store.Post{
		Title:   "Tables",
		Content: "| a | b |\n|---|---|\n| 1 | 2 |",
	}
	out, err := HTML(p)
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}
