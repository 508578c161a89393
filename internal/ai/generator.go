package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"site_prompt_server/internal/types"
)

var (
	// ErrEmptyResponse is returned when the model replies with no content.
	ErrEmptyResponse = errors.New("openai returned empty response")
	// ErrNoDocument is returned when the reply holds no HTML document.
	ErrNoDocument = errors.New("model reply does not contain an HTML document")
)

// ProjectSaver persists generated projects.
type ProjectSaver interface {
	SaveProject(ctx context.Context, p types.Project) error
}

// Generator forwards compiled site prompts to an OpenAI chat model.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a Generator for the given API key and model.
func NewGenerator(apiKey string, model string) *Generator {
	return NewGeneratorWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewGeneratorWithConfig creates a Generator from a full client config, e.g.
// to point it at a compatible endpoint.
func NewGeneratorWithConfig(config openai.ClientConfig, model string) *Generator {
	if model == "" {
		model = openai.GPT4o
	}
	return &Generator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}
