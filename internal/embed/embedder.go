package embed

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/avolkov/veritas/internal/model"
)

// Embedder generates vector embeddings for text
type Embedder interface {
	// Embed generates embeddings for the given texts, one vector per input
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension
	Dimension() int

	// ModelName returns the name of the embedding model
	ModelName() string
}

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	timeout   time.Duration
}

// NewOpenAIEmbedder creates a new OpenAI embedder
func NewOpenAIEmbedder(config model.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for embeddings")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	embeddingModel := config.Model
	if embeddingModel == "" {
		embeddingModel = string(openai.SmallEmbedding3)
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     embeddingModel,
		dimension: dimensionFor(embeddingModel),
		timeout:   timeout,
	}, nil
}

// Embed generates embeddings for the given texts
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctxWithTimeout, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings API error: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	// The API may return data out of order; place by index
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}

	return vectors, nil
}

// Dimension returns the embedding vector dimension
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

func dimensionFor(model string) int {
	switch model {
	case string(openai.SmallEmbedding3):
		return 1536
	case string(openai.LargeEmbedding3):
		return 3072
	case string(openai.AdaEmbeddingV2):
		return 1536
	default:
		return 1536
	}
}
