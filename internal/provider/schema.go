package provider

import (
	"encoding/json"
	"sync"
)

// blogContentSchemaJSON is the canonical JSON schema for a generated blog
// post. Vendor adapters translate it into their SDK's schema dialect; the
// tag-count bound is a hint, not an enforced invariant.
const blogContentSchemaJSON = `{
  "type": "object",
  "properties": {
    "title": {"type": "string", "description": "Post title"},
    "content": {"type": "string", "description": "Full post body in markdown"},
    "summary": {"type": "string", "description": "Two or three sentence summary"},
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "heading": {"type": "string"},
          "content": {"type": "string"}
        },
        "required": ["heading", "content"],
        "additionalProperties": false
      }
    },
    "tags": {"type": "array", "items": {"type": "string"}, "description": "5-7 topical tags"},
    "metaDescription": {"type": "string", "description": "SEO description, at most 160 characters"},
    "keyTakeaways": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["title", "content", "summary", "sections", "tags", "metaDescription", "keyTakeaways"],
  "additionalProperties": false
}`

const keywordListSchemaJSON = `{
  "type": "object",
  "properties": {
    "keywords": {"type": "array", "items": {"type": "string"}, "description": "10-15 SEO keywords"}
  },
  "required": ["keywords"],
  "additionalProperties": false
}`

var (
	schemaOnce        sync.Once
	blogSchemaRaw     map[string]any
	keywordsSchemaRaw map[string]any
)

func loadSchemas() {
	schemaOnce.Do(func() {
		if err := json.Unmarshal([]byte(blogContentSchemaJSON), &blogSchemaRaw); err != nil {
			blogSchemaRaw = map[string]any{"type": "object"}
		}
		if err := json.Unmarshal([]byte(keywordListSchemaJSON), &keywordsSchemaRaw); err != nil {
			keywordsSchemaRaw = map[string]any{"type": "object"}
		}
	})
}

// BlogContentSchema returns the raw schema object for structured blog
// generation.
func BlogContentSchema() map[string]any {
	loadSchemas()
	return blogSchemaRaw
}

// KeywordListSchema returns the raw schema object for keyword extraction.
func KeywordListSchema() map[string]any {
	loadSchemas()
	return keywordsSchemaRaw
}
