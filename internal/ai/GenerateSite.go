package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"site_prompt_server/internal/ai/prompts"
	"site_prompt_server/internal/utils"
)

// retryDelay is the pause before the single retry of a transient failure.
var retryDelay = 2 * time.Second

// GenerateSite sends a compiled prompt to the model and returns the HTML
// document from its reply.
func (g *Generator) GenerateSite(ctx context.Context, promptText string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SiteGenerationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: promptText},
		},
		Temperature: 0.3,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("OpenAI call failed, retrying once after delay... Error: %v", err)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("openai chat completion failed: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenAI usage for failed request: %+v", resp.Usage)
		return "", ErrEmptyResponse
	}

	doc, err := ExtractHTMLDocument(resp.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	log.Printf("Model %s returned a %d byte document", g.model, len(doc))
	return doc, nil
}

// ExtractHTMLDocument strips markdown fences and any chatter around the
// document, returning everything from the doctype (or <html>) to </html>.
func ExtractHTMLDocument(output string) (string, error) {
	cleaned := strings.TrimSpace(output)
	cleaned = strings.TrimPrefix(cleaned, "```html")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	lower := strings.ToLower(cleaned)
	start := strings.Index(lower, "<!doctype")
	if start < 0 {
		start = strings.Index(lower, "<html")
	}
	end := strings.LastIndex(lower, "</html>")
	if start < 0 || end < start {
		return "", ErrNoDocument
	}
	return cleaned[start : end+len("</html>")], nil
}
