package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/avolkov/veritas/internal/cache"
	"github.com/avolkov/veritas/internal/embed"
	"github.com/avolkov/veritas/internal/factcheck"
	"github.com/avolkov/veritas/internal/ingest"
	"github.com/avolkov/veritas/internal/llm"
	"github.com/avolkov/veritas/internal/model"
	"github.com/avolkov/veritas/internal/retrieve"
	"github.com/avolkov/veritas/internal/store"
	"github.com/avolkov/veritas/internal/synth"
)

// Pipeline wires the document loader, indexer, retriever, fact checker and
// answer synthesizer together.
type Pipeline struct {
	loader      *ingest.Loader
	chunker     *ingest.Chunker
	embedder    embed.Embedder
	vectors     store.VectorStore
	retriever   *retrieve.Retriever
	checker     *factcheck.Checker
	synthesizer *synth.Synthesizer
	answerCache cache.Cache // nil disables answer caching
	config      *model.Config
}

// NewPipeline creates a pipeline from configuration. The generation provider
// is optional: ingest-only runs work without one, but Answer requires it.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	embedder, err := embed.NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	vectors, err := store.Open(cfg.Store.Path, embedder.Dimension())
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	var queryCache cache.Cache
	if cfg.Cache.Enabled {
		queryCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var (
		checker     *factcheck.Checker
		synthesizer *synth.Synthesizer
	)
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		_ = vectors.Close()
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	if provider != nil {
		checker = factcheck.NewChecker(provider)
		synthesizer = synth.NewSynthesizer(provider)
	}

	return &Pipeline{
		loader:      ingest.NewLoader(cfg.Ingest.Include, cfg.Output.Verbose),
		chunker:     ingest.NewChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		embedder:    embedder,
		vectors:     vectors,
		retriever:   retrieve.NewRetriever(embedder, vectors, queryCache, cfg.Retrieval.TopK),
		checker:     checker,
		synthesizer: synthesizer,
		answerCache: queryCache,
		config:      cfg,
	}, nil
}

// Close releases the vector store
func (p *Pipeline) Close() error {
	return p.vectors.Close()
}

// IngestStats summarizes an ingest run
type IngestStats struct {
	Documents int
	Chunks    int
}

// Ingest loads documents under root, chunks them, embeds the chunks and
// persists them in the vector store.
func (p *Pipeline) Ingest(ctx context.Context, root string) (*IngestStats, error) {
	documents, err := p.loader.LoadDir(root)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents found under %s", root)
	}

	bar := progressbar.NewOptions(len(documents),
		progressbar.OptionSetDescription("Indexing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	stats := &IngestStats{Documents: len(documents)}

	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks := p.chunker.Chunk(doc)
		if len(chunks) == 0 {
			_ = bar.Add(1)
			continue
		}

		texts := make([]string, len(chunks))
		for i, ch := range chunks {
			texts[i] = ch.Text
		}

		vectors, err := p.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed %s: %w", doc.Title, err)
		}

		items := make([]store.Item, len(chunks))
		for i, ch := range chunks {
			items[i] = store.Item{
				ID:      ch.ID,
				Vector:  vectors[i],
				Content: ch.Text,
				Source:  ch.Source,
			}
		}

		if err := p.vectors.Upsert(items); err != nil {
			return nil, fmt.Errorf("index %s: %w", doc.Title, err)
		}

		stats.Chunks += len(chunks)
		_ = bar.Add(1)
	}

	return stats, nil
}

// Answer runs the full query path: retrieve passages, verify claims against
// them, synthesize the final answer. The synthesis step itself never fails;
// errors here come from retrieval or verification.
func (p *Pipeline) Answer(ctx context.Context, query string) (*model.SynthesisResult, error) {
	if p.synthesizer == nil {
		return nil, fmt.Errorf("no LLM provider configured (set llm.provider)")
	}

	cacheKey := cache.Key("answer:"+p.config.LLM.Provider, query)
	if p.answerCache != nil {
		if data, found := p.answerCache.Get(cacheKey); found {
			var cached model.SynthesisResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	// 1. Retrieve context passages
	docs, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	// 2. Verify claims against the evidence
	items := make([]any, len(docs))
	for i, d := range docs {
		items[i] = d
	}
	passages := model.NormalizePassages(items)

	verdicts, err := p.checker.Check(ctx, query, passages)
	if err != nil {
		return nil, fmt.Errorf("verify claims: %w", err)
	}

	// 3. Synthesize the final answer (never fails)
	result := p.synthesizer.Synthesize(ctx, query, verdicts, items)

	if p.answerCache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.answerCache.Set(cacheKey, data, 0)
		}
	}

	return result, nil
}

// FormatContext renders the retrieved context for a query, for inspection
func (p *Pipeline) FormatContext(ctx context.Context, query string) (string, error) {
	docs, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}
	return retrieve.FormatDocuments(docs), nil
}
