package service

import (
	"context"
	"fmt"
	"strings"

	"rfp-desk/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// TextGenerator is the opaque prompt-in/text-out capability.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMService is the GigaChat backed TextGenerator.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

func buildSystemInstruction() string {
	return `You are a procurement analyst. You turn free-text purchase requests and vendor
proposal emails into structured data and you evaluate vendor proposals against the
original request for proposal (RFP).

Rules:
- Always answer with a single valid JSON object in exactly the requested shape.
- Never invent line items, prices or dates that are not present or clearly implied.
- Numbers are plain JSON numbers without currency symbols or thousands separators.
- Dates use the YYYY-MM-DD format or null when unknown.
- Scores are integers between 0 and 100.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.2

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))

	return &LLMService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

// Generate sends prompt as a single user message and returns the first choice.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from LLM")
	}

	s.logger.Debug("LLM response received", zap.Int("length", len(content)))
	return content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
