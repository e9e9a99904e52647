package driven

import "context"

// GenerateOptions configures a generation request.
type GenerateOptions struct {
	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// Temperature controls randomness (0.0 to 1.0).
	Temperature float64
}

// Generator produces natural-language answers from a prompt.
// It is an optional collaborator; the answer service falls back to
// extractive synthesis when no generator is configured or a call fails.
type Generator interface {
	// Generate produces a completion for the prompt. The context carries
	// the caller's deadline; implementations must honour cancellation.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the model identifier in use.
	ModelName() string

	// Ping checks if the generator is available.
	Ping(ctx context.Context) error

	// Close releases resources held by the generator.
	Close() error
}
