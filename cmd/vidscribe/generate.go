package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vidscribe/internal/generate"
	"vidscribe/internal/repair"
	"vidscribe/internal/store"
)

var (
	genModel       string
	genTitle       string
	genDescription string
	genTags        []string
	genComments    []string
	genLanguage    string
	genNoKeywords  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [transcript file]",
	Short: "Generate a blog post from a video transcript",
	Long: `Reads a transcript from the given file (or stdin when the file is "-"),
generates a blog post, and saves it to the local post database.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genModel, "model", "m", "", "preferred model id (see 'vidscribe models')")
	generateCmd.Flags().StringVarP(&genTitle, "title", "t", "", "video title (required)")
	generateCmd.Flags().StringVarP(&genDescription, "description", "d", "", "video description")
	generateCmd.Flags().StringSliceVar(&genTags, "tag", nil, "video tag (repeatable)")
	generateCmd.Flags().StringSliceVar(&genComments, "comment", nil, "top viewer comment (repeatable)")
	generateCmd.Flags().StringVar(&genLanguage, "language", "", "output language")
	generateCmd.Flags().BoolVar(&genNoKeywords, "no-keywords", false, "skip SEO keyword extraction")
	generateCmd.MarkFlagRequired("title")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	transcript, err := readTranscript(args[0])
	if err != nil {
		return err
	}
	if strings.TrimSpace(transcript) == "" {
		return fmt.Errorf("transcript is empty")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	model := genModel
	if model == "" {
		model = cfg.DefaultModel
	}

	engineOpts := []generate.EngineOption{generate.WithCallTimeout(cfg.Timeout())}
	if len(cfg.FallbackModels) > 0 {
		engineOpts = append(engineOpts, generate.WithFallbackModels(cfg.FallbackModels))
	}
	engine := generate.NewEngine(newResolver(), logger, engineOpts...)

	content, err := engine.GenerateBlogPost(ctx, generate.Request{
		Transcript:       transcript,
		VideoTitle:       genTitle,
		VideoDescription: genDescription,
		Comments:         genComments,
		Tags:             genTags,
		Language:         genLanguage,
		ModelID:          model,
	})
	if err != nil {
		return err
	}

	post := &store.Post{
		VideoTitle:      genTitle,
		Model:           model,
		Title:           content.Title,
		Content:         content.Content,
		Summary:         content.Summary,
		Sections:        content.Sections,
		Tags:            content.Tags,
		MetaDescription: content.MetaDescription,
		KeyTakeaways:    content.KeyTakeaways,
	}
	if !genNoKeywords {
		post.Keywords = engine.ExtractKeywords(ctx, content.Content)
	}

	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.SavePost(ctx, post)
	if err != nil {
		return err
	}

	logger.Info("post saved", zap.String("id", id), zap.String("title", post.Title))
	autoRepair(ctx, s, id)

	fmt.Printf("Generated %q\n", post.Title)
	fmt.Printf("Saved as %s (db: %s)\n", id, s.Path())
	return nil
}

// autoRepair runs a single-record repair pass right after a post is saved,
// catching any malformed payload that slipped through. Best-effort: a
// failure here must never fail the generation that just succeeded.
func autoRepair(ctx context.Context, s *store.Store, id string) {
	if _, err := repair.NewRunner(s, logger).Repair(ctx, id); err != nil {
		logger.Warn("post-save repair failed", zap.String("id", id), zap.Error(err))
	}
}

func readTranscript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}
