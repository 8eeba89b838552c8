package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/veritas/internal/model"
	"github.com/avolkov/veritas/internal/pipeline"
)

var (
	ingestStorePath    string
	ingestInclude      []string
	ingestChunkSize    int
	ingestChunkOverlap int
	ingestEmbedModel   string
	ingestTimeout      time.Duration
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Index documents into the local vector store",
	Long: `Ingest walks a directory of documents, extracts and normalizes their
text, splits it into overlapping chunks, embeds every chunk and persists
the vectors locally.

Immediate subdirectories are treated as collections (e.g. departments).
Plain-text formats are handled directly (.txt, .md, .html); binary office
formats are skipped.

Example:
  veritas ingest ./docs
  veritas ingest ./docs --chunk-size 800 --chunk-overlap 150
  veritas ingest ./docs --include '**/*.md'`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	defaults := model.DefaultConfig()

	ingestCmd.Flags().StringVar(&ingestStorePath, "store", defaults.Store.Path, "vector store path")
	ingestCmd.Flags().StringSliceVar(&ingestInclude, "include", defaults.Ingest.Include, "glob patterns for files to ingest")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", defaults.Ingest.ChunkSize, "characters per chunk")
	ingestCmd.Flags().IntVar(&ingestChunkOverlap, "chunk-overlap", defaults.Ingest.ChunkOverlap, "overlapping characters between chunks")
	ingestCmd.Flags().StringVar(&ingestEmbedModel, "embedding-model", defaults.Embedding.Model, "embedding model name")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 30*time.Minute, "overall ingest timeout")
}

func runIngest(cmd *cobra.Command, args []string) error {
	root := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Store.Path = ingestStorePath
	cfg.Ingest.Include = ingestInclude
	cfg.Ingest.ChunkSize = ingestChunkSize
	cfg.Ingest.ChunkOverlap = ingestChunkOverlap
	cfg.Embedding.Model = ingestEmbedModel
	cfg.Output.Verbose = verbose

	// Ingest only needs the embedding key, not a generation provider
	cfg.LLM.Provider = ""
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.Embedding.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set (required for embeddings)")
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	defer func() { _ = p.Close() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting: %s\n", root)
		fmt.Fprintf(os.Stderr, "Store: %s\n", cfg.Store.Path)
		fmt.Fprintf(os.Stderr, "Chunking: %d chars, %d overlap\n\n", cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	}

	stats, err := p.Ingest(ctx, root)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("✓ Indexed %d documents (%d chunks) into %s\n", stats.Documents, stats.Chunks, cfg.Store.Path)
	return nil
}
