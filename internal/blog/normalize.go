package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotRecoverable signals that no usable title or content could be
// extracted from the model output. The generation engine treats this as
// grounds for falling back to the next model; nothing else does.
var ErrNotRecoverable = errors.New("no usable title or content in model output")

// defaultTags is the generic tag set applied by the terminal prose fallback.
var defaultTags = []string{"video", "blog", "content", "guide", "insights"}

// strategy is one entry of the string-parsing cascade. Strategies are
// evaluated in order; the first whose predicate matches, whose parse
// succeeds, and whose parsed object carries a non-empty content field wins.
type strategy struct {
	name  string
	match func(string) bool
	parse func(string) (map[string]any, error)
}

var stringStrategies = []strategy{
	{name: "fenced", match: startsWithFence, parse: parseFenced},
	{name: "object", match: looksLikeObject, parse: parseObject},
	{name: "escaped", match: looksEscaped, parse: parseEscaped},
}

// Normalize coerces raw model output into a BlogContent. raw is the untyped
// union a model call can produce: an already-shaped object (map), or a
// string holding clean JSON, fenced JSON, double-escaped JSON, or prose.
// fallbackTitle seeds the title when the output has none (typically the
// video title).
func Normalize(raw any, fallbackTitle string) (*BlogContent, error) {
	switch v := raw.(type) {
	case nil:
		return nil, ErrNotRecoverable
	case *BlogContent:
		if v == nil {
			return nil, ErrNotRecoverable
		}
		return normalizeObject(toMap(v), fallbackTitle)
	case BlogContent:
		return normalizeObject(toMap(&v), fallbackTitle)
	case map[string]any:
		return normalizeObject(v, fallbackTitle)
	case string:
		return normalizeString(v, fallbackTitle)
	case []byte:
		return normalizeString(string(v), fallbackTitle)
	default:
		return nil, fmt.Errorf("unsupported model output type %T: %w", raw, ErrNotRecoverable)
	}
}

func normalizeObject(obj map[string]any, fallbackTitle string) (*BlogContent, error) {
	bc := fromMap(obj)
	if bc.Content == "" {
		// An object without content carries nothing worth keeping; a title
		// alone cannot make a post.
		return nil, ErrNotRecoverable
	}
	if bc.Title == "" {
		bc.Title = fallbackTitle + " - Blog Post"
	}
	finalize(bc)
	return bc, nil
}

func normalizeString(s, fallbackTitle string) (*BlogContent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrNotRecoverable
	}
	for _, st := range stringStrategies {
		if !st.match(s) {
			continue
		}
		obj, err := st.parse(s)
		if err != nil {
			continue
		}
		bc := fromMap(obj)
		if bc.Content == "" {
			continue
		}
		if bc.Title == "" {
			bc.Title = fallbackTitle + " - Blog Post"
		}
		finalize(bc)
		return bc, nil
	}

	// Terminal fallback: treat the whole string as post body. This never
	// fails for a non-empty input.
	bc := &BlogContent{
		Title:           fallbackTitle + " - Blog Post",
		Content:         s,
		Summary:         fmt.Sprintf("A blog post based on the video %q.", fallbackTitle),
		Tags:            append([]string(nil), defaultTags...),
		MetaDescription: TruncateMeta(fmt.Sprintf("Read our latest blog post based on %s.", fallbackTitle)),
	}
	finalize(bc)
	return bc, nil
}

// LooksMalformed reports whether stored post content still matches one of
// the structured-string patterns the cascade repairs (fenced JSON, bare
// JSON object, double-escaped JSON). Content that has been normalized no
// longer matches, which is what makes the repair pass idempotent.
func LooksMalformed(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, st := range stringStrategies {
		if st.match(s) {
			return true
		}
	}
	return false
}

// Reparse runs the structured-string strategies against stored content and
// returns the parsed field map of the first one that yields a non-empty
// content field. Used by the repair pass, which must know exactly which
// fields the parse produced.
func Reparse(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	for _, st := range stringStrategies {
		if !st.match(s) {
			continue
		}
		obj, err := st.parse(s)
		if err != nil {
			continue
		}
		if StringField(obj, "content") == "" {
			continue
		}
		return obj, true
	}
	return nil, false
}

func startsWithFence(s string) bool {
	return strings.HasPrefix(s, "```")
}

// parseFenced strips an opening ``` fence (with optional language tag) and
// the closing fence, then JSON-parses the interior.
func parseFenced(s string) (map[string]any, error) {
	body := strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		body = body[nl+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return parseObject(strings.TrimSpace(body))
}

func looksLikeObject(s string) bool {
	return strings.HasPrefix(s, "{") &&
		(strings.Contains(s, `"title"`) || strings.Contains(s, `"content"`))
}

func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func looksEscaped(s string) bool {
	return strings.Contains(s, `\"title\"`) && strings.Contains(s, `\"content\"`)
}

var unescaper = strings.NewReplacer(`\"`, `"`)

// parseEscaped recovers a JSON object that was itself JSON-stringified, so
// quotes arrive as \" and newlines as \n. Only the quotes are unescaped
// here; \n stays a two-character escape so the JSON parser decodes it.
func parseEscaped(s string) (map[string]any, error) {
	s = strings.Trim(unescaper.Replace(s), `"`)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, fmt.Errorf("no object found after unescaping")
	}
	return parseObject(s[start:])
}

// fromMap maps the recognized fields of a parsed object onto a BlogContent.
// Unknown keys are ignored; missing keys become zero values.
func fromMap(obj map[string]any) *BlogContent {
	return &BlogContent{
		Title:           strings.TrimSpace(StringField(obj, "title")),
		Content:         strings.TrimSpace(StringField(obj, "content")),
		Summary:         strings.TrimSpace(StringField(obj, "summary")),
		Sections:        SectionSlice(obj, "sections"),
		Tags:            StringSlice(obj, "tags"),
		MetaDescription: StringField(obj, "metaDescription"),
		KeyTakeaways:    StringSlice(obj, "keyTakeaways"),
	}
}

func toMap(bc *BlogContent) map[string]any {
	data, err := json.Marshal(bc)
	if err != nil {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj
}

// finalize fills defaults so callers never see nil slices, and enforces the
// meta description limit.
func finalize(bc *BlogContent) {
	if bc.Sections == nil {
		bc.Sections = []Section{}
	}
	if bc.Tags == nil {
		bc.Tags = []string{}
	}
	if bc.KeyTakeaways == nil {
		bc.KeyTakeaways = []string{}
	}
	bc.MetaDescription = TruncateMeta(bc.MetaDescription)
}

// StringField returns obj[key] when it is a string, else "".
func StringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// StringSlice returns obj[key] coerced to a string slice. Non-string
// elements are dropped.
func StringSlice(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SectionSlice returns obj[key] coerced to heading/content sections.
func SectionSlice(obj map[string]any, key string) []Section {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Section, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		sec := Section{
			Heading: StringField(m, "heading"),
			Content: StringField(m, "content"),
		}
		if sec.Heading == "" && sec.Content == "" {
			continue
		}
		out = append(out, sec)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
