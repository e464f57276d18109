// internal/store/embed/openai.go
package embed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"consult-ranking/internal/common/config"
)

// Prefixes required by the multilingual E5-family models: queries and
// stored passages use distinct representations, so the same text embeds
// differently depending on its role.
const (
	queryPrefix   = "query: "
	passagePrefix = "passage: "
)

// Client embeds text via an OpenAI-compatible embeddings endpoint
// (siliconflow, openai, ollama, local TEI, ...). Implements store.Embedder.
type Client struct {
	client     *openai.Client
	model      string
	dimensions int
}

func NewClient(cfg config.EmbeddingConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// EmbedQuery embeds user free text with the query-side prefix.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, queryPrefix+text)
}

// EmbedPassage embeds catalog text with the passage-side prefix, matching
// how the index was built.
func (c *Client) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, passagePrefix+text)
}

// Dimensions returns the vector dimension.
func (c *Client) Dimensions() int {
	return c.dimensions
}

func (c *Client) embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: c.dimensions,
	}

	resp, err := c.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create embeddings failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}

	return resp.Data[0].Embedding, nil
}
