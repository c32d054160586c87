package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/config"
	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/store"
	openaiEmb "github.com/kailas-cloud/semsearch/internal/transport/openai"
)

var (
	dataDir       string
	documentsFile string
	indexFile     string
	numDocs       int
	batchSize     int
)

// NewRootCommand creates the indexer root command.
func NewRootCommand(version, commit, date string, logger *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "semsearch-indexer",
		Short: "Offline corpus and index builder for semsearch",
		Long: `semsearch-indexer produces the two files the search service loads at
startup: a JSON documents file and a binary flat L2 vector index aligned with
it by position. The embedding model comes from the service configuration and
must match the one used at query time.`,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "output directory (default: from config)")
	rootCmd.PersistentFlags().StringVar(&documentsFile, "documents-file", "", "documents filename (default: from config)")
	rootCmd.PersistentFlags().StringVar(&indexFile, "index-file", "", "index filename (default: from config)")

	rootCmd.AddCommand(newGenerateCommand(logger))
	rootCmd.AddCommand(newBuildCommand(logger))
	rootCmd.AddCommand(newAllCommand(logger))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newGenerateCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic document corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runGenerate(cfg, logger)
		},
	}
	cmd.Flags().IntVar(&numDocs, "docs", 1000, "number of documents to generate")
	return cmd
}

func newBuildCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Embed the corpus and build the vector index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runBuild(cmd, cfg, logger)
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch", DefaultBatchSize, "embedding batch size")
	return cmd
}

func newAllCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Generate the corpus, then build the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := runGenerate(cfg, logger); err != nil {
				return err
			}
			return runBuild(cmd, cfg, logger)
		},
	}
	cmd.Flags().IntVar(&numDocs, "docs", 1000, "number of documents to generate")
	cmd.Flags().IntVar(&batchSize, "batch", DefaultBatchSize, "embedding batch size")
	return cmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("semsearch-indexer %s (%s) built on %s\n", version, commit, date)
			fmt.Printf("Go version: %s\n", runtime.Version())
		},
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	// Flags override config-derived paths.
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if documentsFile != "" {
		cfg.Data.DocumentsFile = documentsFile
	}
	if indexFile != "" {
		cfg.Data.IndexFile = indexFile
	}
	return cfg, nil
}

func runGenerate(cfg config.Config, logger *zap.Logger) error {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	docs := GenerateDocuments(numDocs)
	path := filepath.Join(cfg.Data.Dir, cfg.Data.DocumentsFile)
	if err := WriteDocuments(path, docs); err != nil {
		return err
	}

	logger.Info("corpus generated", zap.Int("documents", len(docs)), zap.String("path", path))
	return nil
}

func runBuild(cmd *cobra.Command, cfg config.Config, logger *zap.Logger) error {
	docs, err := store.Load(cfg.DocumentsPath())
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	// The document-side instruction must mirror the query-side one used by
	// the service, or vectors land in different embedding spaces.
	var embedder domain.BatchEmbedder = base
	if instr := cfg.Embedding.DocumentInstruction; instr != "" {
		embedder = domain.NewInstructionEmbedder(base, instr)
	}

	builder := NewBuilder(embedder, batchSize, logger)
	idx, err := builder.BuildIndex(cmd.Context(), docs.Documents())
	if err != nil {
		return err
	}

	if err := idx.WriteFile(cfg.IndexPath()); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	logger.Info("index written", zap.String("path", cfg.IndexPath()))
	return nil
}
