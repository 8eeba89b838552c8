package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/veritas/internal/model"
	"github.com/avolkov/veritas/internal/pipeline"
)

var (
	queryStorePath   string
	queryTopK        int
	queryOutJSON     string
	queryTimeout     time.Duration
	queryNoCache     bool
	queryShowContext bool
	queryProvider    string
	queryModel       string
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Answer a question from the indexed documents, with verification",
	Long: `Query retrieves the most relevant passages for a question, verifies
the factual claims needed to answer it against that evidence, and
synthesizes a final answer with a confidence score.

The answer always reports its own limitations: how many claims the
evidence supported, and how many it did not.

Example:
  veritas query "What does the escalation script resolve?"
  veritas query "..." --top-k 5 --json result.json
  veritas query "..." --llm-provider anthropic --llm-model claude-3-5-sonnet-20241022`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	defaults := model.DefaultConfig()

	queryCmd.Flags().StringVar(&queryStorePath, "store", defaults.Store.Path, "vector store path")
	queryCmd.Flags().IntVar(&queryTopK, "top-k", defaults.Retrieval.TopK, "passages to retrieve")
	queryCmd.Flags().StringVar(&queryOutJSON, "json", "", "write the synthesis result to this JSON path")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 5*time.Minute, "overall query timeout")
	queryCmd.Flags().BoolVar(&queryNoCache, "no-cache", false, "disable cache (force fresh retrieval and generation)")
	queryCmd.Flags().BoolVar(&queryShowContext, "show-context", false, "print the retrieved context before the answer")
	queryCmd.Flags().StringVar(&queryProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	queryCmd.Flags().StringVar(&queryModel, "llm-model", "", "LLM model name")
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Store.Path = queryStorePath
	cfg.Retrieval.TopK = queryTopK
	cfg.Cache.Enabled = !queryNoCache
	cfg.Output.Verbose = verbose

	if err := configureLLM(cfg, queryProvider, queryModel); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	defer func() { _ = p.Close() }()

	if queryShowContext {
		formatted, err := p.FormatContext(ctx, question)
		if err != nil {
			return fmt.Errorf("format context: %w", err)
		}
		fmt.Println(formatted)
		fmt.Println(strings.Repeat("─", 60))
	}

	result, err := p.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	printResult(result)

	if queryOutJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(queryOutJSON, data, 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", queryOutJSON)
		}
	}

	return nil
}

// printResult renders a synthesis result to stdout
func printResult(result *model.SynthesisResult) {
	fmt.Println(result.FinalAnswer)
	fmt.Println()
	fmt.Printf("Confidence: %.2f%%\n", result.ConfidenceScore)

	b := result.ClaimBreakdown
	fmt.Printf("Claims: %d supported, %d partial, %d not supported, %d contradicted\n",
		b.Supported, b.PartiallySupported, b.NotSupported, b.Contradicted)

	if len(result.VerifiedSources) > 0 {
		fmt.Printf("Sources: %s\n", strings.Join(result.VerifiedSources, ", "))
	}
	fmt.Printf("Limitations: %s\n", result.Limitations)
}

// configureLLM fills in generation and embedding credentials from the
// environment based on the chosen provider.
func configureLLM(cfg *model.Config, provider, modelName string) error {
	cfg.LLM.Provider = provider
	cfg.LLM.Model = modelName

	// Embeddings always go through OpenAI
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.Embedding.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set (required for embeddings)")
	}

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}
