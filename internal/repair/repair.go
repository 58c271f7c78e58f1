// Package repair fixes stored posts whose content is still a raw JSON
// payload rather than prose, which happens when older versions saved model
// output without running it through the normalizer.
package repair

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vidscribe/internal/blog"
	"vidscribe/internal/store"
)

// PostStore is the slice of the post store the repair pass needs.
type PostStore interface {
	GetPost(ctx context.Context, id string) (*store.Post, error)
	ListPosts(ctx context.Context, limit int) ([]*store.Post, error)
	UpdatePost(ctx context.Context, p *store.Post) error
}

// Runner walks stored posts and rewrites the ones that look malformed.
type Runner struct {
	store PostStore
	log   *zap.Logger
}

// NewRunner creates a repair runner.
func NewRunner(s PostStore, log *zap.Logger) *Runner {
	return &Runner{store: s, log: log}
}

// Repair fixes the post with the given id, or every post when id is empty.
// It returns how many posts were rewritten. Posts that fail to load or save
// are logged and skipped rather than aborting the pass, and the pass is
// idempotent: repaired content no longer matches the malformed patterns, so
// a second run changes nothing.
func (r *Runner) Repair(ctx context.Context, id string) (int, error) {
	if id != "" {
		p, err := r.store.GetPost(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to load post %s: %w", id, err)
		}
		if r.repairOne(ctx, p) {
			return 1, nil
		}
		return 0, nil
	}

	posts, err := r.store.ListPosts(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to list posts: %w", err)
	}

	repaired := 0
	for _, p := range posts {
		if ctx.Err() != nil {
			return repaired, ctx.Err()
		}
		if r.repairOne(ctx, p) {
			repaired++
		}
	}
	r.log.Info("repair pass complete",
		zap.Int("scanned", len(posts)),
		zap.Int("repaired", repaired))
	return repaired, nil
}

// repairOne rewrites a single post when its content parses as an embedded
// JSON payload. Only fields the parse actually yielded are patched; the
// rest of the post keeps its stored values.
func (r *Runner) repairOne(ctx context.Context, p *store.Post) bool {
	if !blog.LooksMalformed(p.Content) {
		return false
	}
	obj, ok := blog.Reparse(p.Content)
	if !ok {
		r.log.Warn("post looks malformed but could not be reparsed",
			zap.String("id", p.ID))
		return false
	}

	p.Content = blog.StringField(obj, "content")
	if v := blog.StringField(obj, "title"); v != "" {
		p.Title = v
	}
	if v := blog.StringField(obj, "summary"); v != "" {
		p.Summary = v
	}
	if v := blog.StringField(obj, "metaDescription"); v != "" {
		p.MetaDescription = blog.TruncateMeta(v)
	}
	if v := blog.StringSlice(obj, "tags"); v != nil {
		p.Tags = v
	}
	if v := blog.SectionSlice(obj, "sections"); v != nil {
		p.Sections = v
	}
	if v := blog.StringSlice(obj, "keyTakeaways"); v != nil {
		p.KeyTakeaways = v
	}

	if err := r.store.UpdatePost(ctx, p); err != nil {
		r.log.Warn("failed to save repaired post",
			zap.String("id", p.ID),
			zap.Error(err))
		return false
	}
	r.log.Info("repaired post", zap.String("id", p.ID), zap.String("title", p.Title))
	return true
}
