package answer

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChat implements ChatClient with the OpenAI chat completions API.
type OpenAIChat struct {
	api *openai.Client
}

func NewOpenAIChat(apiKey string) *OpenAIChat {
	return &OpenAIChat{api: openai.NewClient(apiKey)}
}

// Complete sends the system and user messages and returns the raw answer
// text. Low temperature keeps answers consistent across runs.
func (c *OpenAIChat) Complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
