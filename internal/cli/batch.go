package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/veritas/internal/model"
	"github.com/avolkov/veritas/internal/pipeline"
	"github.com/avolkov/veritas/internal/worker"
)

var (
	batchStorePath string
	batchTopK      int
	batchWorkers   int
	batchOutJSON   string
	batchTimeout   time.Duration
	batchProvider  string
	batchModel     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer a file of questions concurrently",
	Long: `Batch reads questions from a file (one per line, # for comments,
duplicates skipped) and answers them concurrently against the indexed
documents.

Example:
  veritas batch questions.txt
  veritas batch questions.txt --workers 8 --json answers.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	defaults := model.DefaultConfig()

	batchCmd.Flags().StringVar(&batchStorePath, "store", defaults.Store.Path, "vector store path")
	batchCmd.Flags().IntVar(&batchTopK, "top-k", defaults.Retrieval.TopK, "passages to retrieve per question")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", defaults.Concurrency.BatchWorkers, "concurrent questions")
	batchCmd.Flags().StringVar(&batchOutJSON, "json", "", "write all results to this JSON path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
	batchCmd.Flags().StringVar(&batchProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&batchModel, "llm-model", "", "LLM model name")
}

// batchEntry is one question/result pair in the JSON output
type batchEntry struct {
	Question string                 `json:"question"`
	Result   *model.SynthesisResult `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Store.Path = batchStorePath
	cfg.Retrieval.TopK = batchTopK
	cfg.Concurrency.BatchWorkers = batchWorkers
	cfg.Output.Verbose = verbose

	if err := configureLLM(cfg, batchProvider, batchModel); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	defer func() { _ = p.Close() }()

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)

	results, err := processor.ProcessFile(ctx, filePath)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	succeeded := 0
	entries := make([]batchEntry, 0, len(results))
	for _, res := range results {
		entry := batchEntry{Question: res.Question, Result: res.Result}
		if res.Error != nil {
			entry.Error = res.Error.Error()
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Question, res.Error)
		} else {
			succeeded++
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ %s (%.2f%%)\n", res.Question, res.Result.ConfidenceScore)
			}
		}
		entries = append(entries, entry)
	}

	fmt.Printf("✓ Answered %d/%d questions\n", succeeded, len(results))

	if batchOutJSON != "" {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		if err := os.WriteFile(batchOutJSON, data, 0644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Printf("✓ Wrote JSON: %s\n", batchOutJSON)
	}

	return nil
}
