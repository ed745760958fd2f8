package inference

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"www.github.com/Wanderer0074348/ShadowRoute/src/config"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// TeacherClient is the hosted large-model client. Its generations are the
// customer-facing default and the reference side of every tutor pair.
type TeacherClient struct {
	config *config.TeacherConfig
	llm    llms.Model
}

func NewTeacherClient(cfg *config.TeacherConfig) (*TeacherClient, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher client: %w", err)
	}

	return &TeacherClient{
		config: cfg,
		llm:    llm,
	}, nil
}

func (c *TeacherClient) Generate(ctx context.Context, req *models.GenerationRequest) (string, error) {
	prompt := buildPrompt(req)

	temperature := float64(req.Temperature)
	if temperature == 0 {
		temperature = 0.7
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}

	response, err := llms.GenerateFromSinglePrompt(
		ctx,
		c.llm,
		prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("teacher generation failed: %w", err)
	}

	return response, nil
}

// ModelName reports the configured model identifier for pair logging.
func (c *TeacherClient) ModelName() string {
	return c.config.Model
}

func buildPrompt(req *models.GenerationRequest) string {
	prompt := req.Prompt
	if req.Context != "" {
		prompt = fmt.Sprintf("Context: %s\n\nQuestion: %s", req.Context, req.Prompt)
	}
	if req.SystemPrompt != "" {
		prompt = fmt.Sprintf("%s\n\n%s", req.SystemPrompt, prompt)
	}
	return prompt
}
