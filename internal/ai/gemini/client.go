package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/resume-ranker/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel          = "gemini-2.5-pro"
	defaultEmbeddingModel = "gemini-embedding-001"

	retryBackoff = 2 * time.Second
)

// Client wraps the Google GenAI client to provide simple prompt-based
// interactions and text embeddings.
type Client struct {
	client         *genai.Client
	modelName      string
	embeddingModel string
	maxRetries     int
	logger         *zap.Logger
}

// New creates a new Client configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model, embeddingModel string, maxRetries int, logger *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if embeddingModel = strings.TrimSpace(embeddingModel); embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	if maxRetries < 0 {
		maxRetries = 0
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:         client,
		modelName:      model,
		embeddingModel: embeddingModel,
		maxRetries:     maxRetries,
		logger:         logger,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var output string
	err := c.withRetries(ctx, "generate content", func() error {
		resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}

		var builder strings.Builder
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part == nil {
					continue
				}
				text := strings.TrimSpace(part.Text)
				if text == "" {
					continue
				}
				if builder.Len() > 0 {
					builder.WriteString("\n")
				}
				builder.WriteString(text)
			}
		}

		output = strings.TrimSpace(builder.String())
		if output == "" {
			return errors.New("gemini api returned empty response")
		}

		return nil
	})

	return output, err
}

// Embed maps the text to an embedding vector. Gemini rejects empty content, so
// blank input is substituted with a single space; the provider then returns its
// near-zero-information vector instead of an error.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	if strings.TrimSpace(text) == "" {
		text = " "
	}

	var vector []float64
	err := c.withRetries(ctx, "embed content", func() error {
		resp, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), nil)
		if err != nil {
			return fmt.Errorf("embed content: %w", err)
		}

		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return errors.New("gemini api returned empty embedding")
		}

		values := resp.Embeddings[0].Values
		vector = make([]float64, len(values))
		for i, v := range values {
			vector[i] = float64(v)
		}

		return nil
	})

	return vector, err
}

func (c *Client) withRetries(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if attempt >= c.maxRetries {
			break
		}

		c.logger.Warn("retrying gemini call",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		if waitErr := utils.WaitFor(ctx, retryBackoff); waitErr != nil {
			return waitErr
		}
	}

	return err
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

func (c *Client) EmbeddingModel() string {
	if c == nil {
		return ""
	}
	return c.embeddingModel
}
