// Package gemini wraps the generative-text collaborator. Output format is
// enforced by the prompt contract; responses are not validated structurally.
package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/utils"
)

type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type client struct {
	log   *logger.Logger
	gc    *genai.Client
	model string
}

func NewClient(ctx context.Context, log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := utils.GetEnv("GEMINI_MODEL", "gemini-2.5-flash", log)
	return &client{
		log:   log.With("client", "Gemini"),
		gc:    gc,
		model: model,
	}, nil
}

func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.gc.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}
	return text, nil
}
