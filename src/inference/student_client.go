package inference

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"www.github.com/Wanderer0074348/ShadowRoute/src/config"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// StudentClient talks to the locally-hosted small model through its
// OpenAI-compatible endpoint (Ollama, vLLM, llama.cpp server). Student calls
// run off the critical path, so a semaphore caps how many generations the
// local host handles at once.
type StudentClient struct {
	config     *config.StudentConfig
	llm        llms.Model
	workerPool chan struct{}
}

func NewStudentClient(cfg *config.StudentConfig) (*StudentClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("student endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("student model name is required")
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.Endpoint),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create student client for %s: %w", cfg.Model, err)
	}

	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &StudentClient{
		config:     cfg,
		llm:        llm,
		workerPool: make(chan struct{}, maxConcurrent),
	}, nil
}

func (c *StudentClient) Generate(ctx context.Context, req *models.GenerationRequest) (string, error) {
	select {
	case c.workerPool <- struct{}{}:
		defer func() { <-c.workerPool }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

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
		return "", fmt.Errorf("student model %s generation failed: %w", c.config.Model, err)
	}

	return response, nil
}

// ModelName reports the configured model identifier for pair logging.
func (c *StudentClient) ModelName() string {
	return c.config.Model
}

func (c *StudentClient) Close() error {
	close(c.workerPool)
	return nil
}
