// Package blog defines the canonical blog post shape produced by the
// generation engine and the normalization cascade that coerces raw model
// output into it.
package blog

import "unicode/utf8"

// MaxMetaDescription is the SEO limit for meta descriptions. Longer values
// are truncated, never rejected.
const MaxMetaDescription = 160

// Section is one heading/body pair of a structured post.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// BlogContent is the canonical output record. After a successful
// normalization Title and Content are always non-empty; the remaining
// fields default to empty values when the model omitted them.
type BlogContent struct {
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Summary         string    `json:"summary"`
	Sections        []Section `json:"sections"`
	Tags            []string  `json:"tags"`
	MetaDescription string    `json:"metaDescription"`
	KeyTakeaways    []string  `json:"keyTakeaways"`
}

// TruncateMeta clips a meta description to MaxMetaDescription runes.
func TruncateMeta(s string) string {
	if utf8.RuneCountInString(s) <= MaxMetaDescription {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxMetaDescription])
}
