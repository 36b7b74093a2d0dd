// Package clemchat is the langchaingo implementation of the ai.Chatter
// interface.
package clemchat

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Orange-County-AI/clem/logging"
	"github.com/Orange-County-AI/clem/retry"
)

// Bot is a client for interacting with the LLM.
type Bot struct {
	llm       llms.Model
	modelName string
	policy    retry.Policy
	logger    *logging.Logger
}

// Setup creates a new LLM chat client. baseURL may be empty to use the
// default OpenAI endpoint, or point at any openai-compatible server.
func Setup(modelName, baseURL string, logger *logging.Logger) (*Bot, error) {
	if logger == nil {
		logger = logging.Default()
	}

	logger.Info("setting up clem chat LLM client", "model", modelName, "baseURL", baseURL)

	opts := []openai.Option{
		openai.WithModel(modelName),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		logger.Error("failed to create OpenAI LLM", "error", err.Error())
		return nil, fmt.Errorf("failed to create OpenAI LLM: %w", err)
	}

	return &Bot{
		llm:       llm,
		modelName: modelName,
		policy:    retry.NewPolicy(logger),
		logger:    logger,
	}, nil
}

// ModelName reports which model this client generates with. Stored message
// rows authored by Clem record it.
func (b *Bot) ModelName() string {
	return b.modelName
}
