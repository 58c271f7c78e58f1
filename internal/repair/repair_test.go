package repair

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vidscribe/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func savePost(t *testing.T, s *store.Store, content string) string {
	t.Helper()
	id, err := s.SavePost(context.Background(), &store.Post{
		VideoTitle: "Video",
		Model:      "gpt-4o",
		Title:      "Old Title",
		Content:    content,
		Summary:    "old summary",
		Tags:       []string{"old"},
	})
	require.NoError(t, err)
	return id
}

func TestRepair_FixesEmbeddedJSON(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s, zap.NewNop())
	ctx := context.Background()

	id := savePost(t, s, `{"title":"New Title","content":"Real body.","tags":["fresh","clean"]}`)

	n, err := r.Repair(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "Real body.", got.Content)
	assert.Equal(t, []string{"fresh", "clean"}, got.Tags)
}

func TestRepair_PatchesOnlyParsedFields(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s, zap.NewNop())
	ctx := context.Background()

	// No title, summary, or tags in the payload: stored values survive.
	id := savePost(t, s, "```json\n{\"content\":\"Recovered body.\"}\n```")

	n, err := r.Repair(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Recovered body.", got.Content)
	assert.Equal(t, "Old Title", got.Title)
	assert.Equal(t, "old summary", got.Summary)
	assert.Equal(t, []string{"old"}, got.Tags)
}

func TestRepair_SkipsHealthyPosts(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s, zap.NewNop())
	ctx := context.Background()

	savePost(t, s, "## A heading\n\nPerfectly normal markdown prose.")

	n, err := r.Repair(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepair_Idempotent(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s, zap.NewNop())
	ctx := context.Background()

	savePost(t, s, `{"title":"T","content":"Plain prose after repair."}`)
	savePost(t, s, "```json\n{\"title\":\"T2\",\"content\":\"Also prose.\"}\n```")

	n, err := r.Repair(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Second pass finds nothing left to fix.
	n, err = r.Repair(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepair_SingleUnknownID(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s, zap.NewNop())

	_, err := r.Repair(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepair_UnparseablePayloadLeftAlone(t *testing.T) {
	s := newTestStore(t)
	r := NewRunner(s, zap.NewNop())
	ctx := context.Background()

	// Looks like JSON but has no content field the parse can yield.
	id := savePost(t, s, `{"title":"only a title"}`)

	n, err := r.Repair(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"only a title"}`, got.Content)
}
