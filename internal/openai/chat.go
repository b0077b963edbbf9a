package openai

import (
	"context"
	"net/http"

	"github.com/julianstephens/mindful/internal/logger"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ChatCompletion returns the content of the first choice, or "" when the
// response has none.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (string, error) {
	logger.Debug("Requesting chat completion", "model", req.Model, "messages", len(req.Messages))

	var resp chatCompletionResponse
	if err := c.do(ctx, http.MethodPost, "/chat/completions", req, &resp, false); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
