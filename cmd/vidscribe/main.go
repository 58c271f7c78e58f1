package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vidscribe/internal/catalog"
	"vidscribe/internal/config"
	"vidscribe/internal/provider"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vidscribe",
	Short: "vidscribe - turn video transcripts into blog posts",
	Long: `vidscribe generates publication-ready blog posts from video transcripts
using whichever AI providers you have credentials for.

Set one or more of OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY,
MISTRAL_API_KEY, GROQ_API_KEY, DEEPSEEK_API_KEY, XAI_API_KEY, or
OPENROUTER_API_KEY; when the requested model fails, generation falls back
across configured vendors automatically.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if configPath == "" {
			configPath = config.DefaultPath()
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newResolver builds a provider resolver from the loaded config.
func newResolver() *provider.Resolver {
	opts := []provider.Option{provider.WithTimeout(cfg.Timeout())}
	for vendor, url := range cfg.BaseURLs {
		opts = append(opts, provider.WithBaseURL(catalog.Vendor(vendor), url))
	}
	return provider.NewResolver(logger, opts...)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.vidscribe/config.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
