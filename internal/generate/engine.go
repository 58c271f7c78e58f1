// Package generate orchestrates blog generation across providers. The engine
// owns the fallback chain; individual vendor quirks live behind
// provider.Handle, and output repair lives in the blog normalizer.
package generate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vidscribe/internal/blog"
	"vidscribe/internal/provider"
)

// DefaultFallbackModels are tried, in order, after the requested model
// fails. Chosen to span vendors so one outage does not sink the chain.
var DefaultFallbackModels = []string{
	"gpt-4o-mini",
	"gemini-2.0-flash",
	"llama-3.1-8b-instant",
}

const (
	blogMaxTokens   = 8192
	blogTemperature = 0.7
)

// ProviderResolver is the slice of the provider resolver the engine needs.
type ProviderResolver interface {
	Resolve(modelID string) (provider.Handle, error)
}

// Request carries everything known about the source video.
type Request struct {
	Transcript       string
	VideoTitle       string
	VideoDescription string
	Comments         []string
	Tags             []string
	Language         string

	// ModelID is the caller's preferred model. Empty means start directly
	// with the fallback chain.
	ModelID string
}

// Engine drives the generate-normalize-fallback loop.
type Engine struct {
	resolver    ProviderResolver
	fallback    []string
	callTimeout time.Duration
	log         *zap.Logger
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithFallbackModels replaces the default fallback chain.
func WithFallbackModels(models []string) EngineOption {
	return func(e *Engine) { e.fallback = models }
}

// WithCallTimeout bounds each individual model call.
func WithCallTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.callTimeout = d }
}

// NewEngine creates an engine with the default fallback chain.
func NewEngine(resolver ProviderResolver, log *zap.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		resolver:    resolver,
		fallback:    DefaultFallbackModels,
		callTimeout: provider.DefaultTimeout,
		log:         log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateBlogPost tries the requested model, then each fallback, until one
// yields usable content. A model that cannot be resolved, errors out, or
// produces unrecoverable output is recorded and the next model is tried.
// There are no per-model retries: a failure moves straight down the chain.
func (e *Engine) GenerateBlogPost(ctx context.Context, req Request) (*blog.BlogContent, error) {
	attempts := make([]Attempt, 0, len(e.fallback)+1)

	for _, modelID := range e.modelChain(req.ModelID) {
		content, err := e.tryModel(ctx, modelID, req)
		if err == nil {
			e.log.Info("blog post generated",
				zap.String("model", modelID),
				zap.Int("attempts", len(attempts)+1))
			return content, nil
		}
		e.log.Warn("model attempt failed",
			zap.String("model", modelID),
			zap.Error(err))
		attempts = append(attempts, Attempt{ModelID: modelID, Reason: err.Error()})

		if ctx.Err() != nil {
			break
		}
	}

	return nil, &GenerationError{Attempts: attempts}
}

// modelChain is the requested model followed by the fallbacks, with the
// requested model deduplicated out of the fallback list.
func (e *Engine) modelChain(requested string) []string {
	chain := make([]string, 0, len(e.fallback)+1)
	if requested != "" {
		chain = append(chain, requested)
	}
	for _, m := range e.fallback {
		if m != requested {
			chain = append(chain, m)
		}
	}
	return chain
}

// tryModel runs one model through the structured call, the text retry, and
// the normalizer. Structured output is preferred; if the vendor call itself
// fails, one plain-text call with an explicit JSON instruction is made
// before giving up on the model.
func (e *Engine) tryModel(ctx context.Context, modelID string, req Request) (*blog.BlogContent, error) {
	h, err := e.resolver.Resolve(modelID)
	if err != nil {
		return nil, err
	}

	system, user := buildBlogPrompt(req)
	preq := provider.Request{
		System:      system,
		User:        user,
		Schema:      provider.BlogContentSchema(),
		SchemaName:  "BlogContent",
		MaxTokens:   blogMaxTokens,
		Temperature: blogTemperature,
	}

	out, err := e.callModel(ctx, h, preq, provider.ModeStructured)
	if err != nil {
		e.log.Debug("structured call failed, retrying as text",
			zap.String("model", modelID),
			zap.Error(err))
		preq.User = user + "\n\n" + jsonInstruction
		out, err = e.callModel(ctx, h, preq, provider.ModeText)
		if err != nil {
			return nil, err
		}
	}

	return blog.Normalize(out.Value(), req.VideoTitle)
}

func (e *Engine) callModel(ctx context.Context, h provider.Handle, req provider.Request, mode provider.Mode) (provider.RawOutput, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()
	return h.Generate(callCtx, req, mode)
}
