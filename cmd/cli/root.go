package main

import (
	"github.com/spf13/cobra"

	"newscheck/internal/acquirer"
	"newscheck/internal/classifier"
	"newscheck/internal/config"
	"newscheck/internal/crawler"
	"newscheck/internal/pipeline"
	"newscheck/pkg/logger"
)

var (
	cfgPath         string
	modelPath       string
	transformerPath string
	logLevel        string

	analyzer *pipeline.Analyzer
)

var rootCmd = &cobra.Command{
	Use:   "newscheck",
	Short: "Classify news articles as real or fake",
	Long: `newscheck runs a pre-trained text classifier over news articles,
either typed in directly or scraped from the paragraphs of a web page.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config (optional)")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "model artifact (overrides config)")
	rootCmd.PersistentFlags().StringVar(&transformerPath, "transformer", "", "transformer artifact (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// setup loads config and model artifacts. Only commands that classify run it,
// so help and completion work without a model on disk.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if modelPath != "" {
		cfg.Model.Path = modelPath
	}
	if transformerPath != "" {
		cfg.Model.TransformerPath = transformerPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	l := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level)

	model, transformer, err := classifier.LoadArtifacts(cfg.Model.Path, cfg.Model.TransformerPath)
	if err != nil {
		return err
	}
	client := crawler.NewHTTPClient(cfg.Fetch.Timeout, cfg.Fetch.DialTimeout, cfg.Fetch.MaxBytes)
	analyzer = pipeline.New(acquirer.New(client, cfg.Fetch.MinChars), classifier.New(transformer, model), l)
	return nil
}
