package ports

import "context"

// GenerationConfig holds the sampling parameters sent with a prompt.
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// TextGenerator is an external text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}
