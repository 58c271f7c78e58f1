package generate

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"vidscribe/internal/blog"
	"vidscribe/internal/provider"
)

const (
	keywordMaxTokens = 512
	summaryMaxTokens = 1024
	auxTemperature   = 0.3
)

// ExtractKeywords walks the fallback chain asking for SEO keywords until a
// model answers with a parseable list. Keyword extraction is decorative:
// any failure, from no configured vendor to unparseable output from every
// model, yields nil rather than an error.
func (e *Engine) ExtractKeywords(ctx context.Context, content string) []string {
	system, user := buildKeywordPrompt(content)
	req := provider.Request{
		System:      system,
		User:        user,
		Schema:      provider.KeywordListSchema(),
		SchemaName:  "KeywordList",
		MaxTokens:   keywordMaxTokens,
		Temperature: auxTemperature,
	}

	for _, modelID := range e.modelChain("") {
		h, err := e.resolver.Resolve(modelID)
		if err != nil {
			continue
		}
		out, err := e.callModel(ctx, h, req, provider.ModeStructured)
		if err != nil {
			e.log.Debug("keyword extraction failed",
				zap.String("model", modelID),
				zap.Error(err))
			continue
		}
		if kws := parseStringList(out, "keywords"); len(kws) > 0 {
			return kws
		}
		e.log.Debug("keyword output unparseable", zap.String("model", modelID))
	}

	e.log.Debug("keyword extraction produced nothing")
	return nil
}

// GenerateSummary produces a plain-text summary of at most maxLen runes.
// Unlike keyword extraction it returns an error, but only when no model in
// the chain is reachable at all.
func (e *Engine) GenerateSummary(ctx context.Context, content string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = 300
	}

	attempts := make([]Attempt, 0, len(e.fallback))
	system, user := buildSummaryPrompt(content, maxLen)

	for _, modelID := range e.modelChain("") {
		h, err := e.resolver.Resolve(modelID)
		if err != nil {
			attempts = append(attempts, Attempt{ModelID: modelID, Reason: err.Error()})
			continue
		}
		out, err := e.callModel(ctx, h, provider.Request{
			System:      system,
			User:        user,
			MaxTokens:   summaryMaxTokens,
			Temperature: auxTemperature,
		}, provider.ModeText)
		if err != nil {
			attempts = append(attempts, Attempt{ModelID: modelID, Reason: err.Error()})
			continue
		}
		s := strings.TrimSpace(out.Text)
		if s == "" {
			attempts = append(attempts, Attempt{ModelID: modelID, Reason: "empty summary"})
			continue
		}
		return clipRunes(s, maxLen), nil
	}

	return "", &GenerationError{Attempts: attempts}
}

// parseStringList pulls a string list out of a raw model output: either the
// named field of the structured object, or text holding a JSON object with
// that field, or text holding a bare JSON array.
func parseStringList(out provider.RawOutput, key string) []string {
	if out.Object != nil {
		return blog.StringSlice(out.Object, key)
	}

	s := strings.TrimSpace(out.Text)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			return blog.StringSlice(obj, key)
		}
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return arr
		}
	}
	return nil
}

func clipRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
