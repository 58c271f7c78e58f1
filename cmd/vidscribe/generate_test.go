package main

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
	logger = zap.NewNop()
	s, err := store.New(filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAutoRepair_FixesFreshMalformedPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SavePost(ctx, &store.Post{
		VideoTitle: "Video",
		Model:      "gpt-4o",
		Title:      "Old",
		Content:    `{"title":"Fixed","content":"Real body."}`,
	})
	require.NoError(t, err)

	autoRepair(ctx, s, id)

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fixed", got.Title)
	assert.Equal(t, "Real body.", got.Content)
}

func TestAutoRepair_HealthyPostUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SavePost(ctx, &store.Post{
		VideoTitle: "Video",
		Model:      "gpt-4o",
		Title:      "T",
		Content:    "Perfectly normal prose.",
	})
	require.NoError(t, err)

	autoRepair(ctx, s, id)

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Perfectly normal prose.", got.Content)
}

func TestAutoRepair_FailureIsNonFatal(t *testing.T) {
	s := newTestStore(t)

	// Unknown id makes the repair pass error; autoRepair must swallow it.
	autoRepair(context.Background(), s, "no-such-id")
}
