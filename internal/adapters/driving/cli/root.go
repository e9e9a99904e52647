// Package cli implements the askdoc command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	embollama "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/embedding/ollama"
	embopenai "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/embedding/openai"
	genollama "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/generator/ollama"
	genopenai "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/generator/openai"

	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/embedding/tfidf"
	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/askdoc-labs/askdoc-cli/internal/chunker"
	"github.com/askdoc-labs/askdoc-cli/internal/config"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/core/services"
	"github.com/askdoc-labs/askdoc-cli/internal/extractors"
	"github.com/askdoc-labs/askdoc-cli/internal/index"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// pingTimeout bounds each startup availability probe.
const pingTimeout = 3 * time.Second

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool

	cfg       *config.Config
	store     driven.DocumentStore
	embedder  driven.EmbeddingService
	generator driven.Generator
	registry  *extractors.Registry

	corpusService    driving.CorpusService
	retrievalService driving.RetrievalService
	askService       driving.AskService
)

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about your documents",
	Long: `askdoc maintains a local corpus of documents and answers questions
against it. Documents are chunked, embedded and indexed on ingest; questions
retrieve the most similar chunks and synthesise an answer, via a language
model when one is available and extractively otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if skipServices(cmd) {
			return nil
		}
		return initServices(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if skipServices(cmd) {
			return nil
		}
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.askdoc/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.askdoc/data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// skipServices reports whether a command runs without the corpus wired up.
func skipServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

// initServices loads configuration, opens the store, probes the backends and
// wires the services together.
func initServices(ctx context.Context) error {
	path := flagConfig
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	store, err = sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}

	embedder, err = buildEmbedder(ctx, cfg.Embedding)
	if err != nil {
		return err
	}
	logger.Info("embedding backend: %s", embedder.Name())

	registry = extractors.Default()

	splitter := chunker.New(
		chunker.WithSize(cfg.Chunker.Size),
		chunker.WithOverlap(cfg.Chunker.Overlap),
	)
	idx := index.New()

	corpus := services.NewCorpusService(store, embedder, splitter, idx)
	if err := corpus.Reload(ctx); err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	corpusService = corpus

	retrievalService = services.NewRetrievalService(embedder, idx)

	generator = buildGenerator(ctx, cfg.Generator)
	askService = services.NewAnswerService(retrievalService, generator, services.AnswerConfig{
		GeneratorTimeout: time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
		MaxTokens:        cfg.Generator.MaxTokens,
		Temperature:      cfg.Generator.Temperature,
	})
	return nil
}

// buildEmbedder selects the embedding backend. "auto" probes Ollama and
// falls back to the local TF-IDF backend when it is not reachable.
func buildEmbedder(ctx context.Context, ec config.EmbeddingConfig) (driven.EmbeddingService, error) {
	probe := func(svc driven.EmbeddingService) error {
		probeCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return svc.Ping(probeCtx)
	}

	switch ec.Backend {
	case "tfidf":
		return tfidf.New(), nil

	case "ollama":
		svc := embollama.New(embollama.Config{
			BaseURL:           ec.BaseURL,
			Model:             ec.Model,
			RequestsPerSecond: ec.RequestsPerSecond,
		})
		if err := probe(svc); err != nil {
			return nil, fmt.Errorf("ollama embedding backend unavailable: %w", err)
		}
		return svc, nil

	case "openai":
		keyEnv := ec.APIKeyEnv
		if keyEnv == "" {
			keyEnv = "OPENAI_API_KEY"
		}
		svc := embopenai.New(embopenai.Config{
			APIKey:            os.Getenv(keyEnv),
			BaseURL:           ec.BaseURL,
			Model:             ec.Model,
			RequestsPerSecond: ec.RequestsPerSecond,
		})
		if err := probe(svc); err != nil {
			return nil, fmt.Errorf("openai embedding backend unavailable: %w", err)
		}
		return svc, nil

	case "", "auto":
		svc := embollama.New(embollama.Config{
			BaseURL:           ec.BaseURL,
			Model:             ec.Model,
			RequestsPerSecond: ec.RequestsPerSecond,
		})
		if err := probe(svc); err != nil {
			logger.Warn("ollama not reachable, using tfidf fallback: %v", err)
			svc.Close()
			return tfidf.New(), nil
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unknown embedding backend %q", ec.Backend)
	}
}

// buildGenerator selects the answer generator, or nil when none is
// configured or reachable. A missing generator is not fatal: answers fall
// back to extraction.
func buildGenerator(ctx context.Context, gc config.GeneratorConfig) driven.Generator {
	var gen driven.Generator
	switch gc.Provider {
	case "", "none":
		return nil
	case "ollama":
		gen = genollama.New(genollama.Config{
			BaseURL: gc.BaseURL,
			Model:   gc.Model,
		})
	case "openai":
		keyEnv := gc.APIKeyEnv
		if keyEnv == "" {
			keyEnv = "OPENAI_API_KEY"
		}
		gen = genopenai.New(genopenai.Config{
			APIKey:  os.Getenv(keyEnv),
			BaseURL: gc.BaseURL,
			Model:   gc.Model,
		})
	default:
		logger.Warn("unknown generator provider %q, answers will be extractive", gc.Provider)
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := gen.Ping(probeCtx); err != nil {
		logger.Warn("generator unavailable, answers will be extractive: %v", err)
		gen.Close()
		return nil
	}
	logger.Info("generator: %s (%s)", gc.Provider, gen.ModelName())
	return gen
}

func closeServices() error {
	if generator != nil {
		generator.Close()
	}
	if embedder != nil {
		embedder.Close()
	}
	if store != nil {
		return store.Close()
	}
	return nil
}
