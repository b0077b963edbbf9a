// Package openai is a small HTTP client for the OpenAI chat completions and
// assistants (threads/runs) endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
)

var (
	ErrRunFailed = errors.New("assistant run did not complete")
	ErrPollLimit = errors.New("assistant run still pending after max poll attempts")
	ErrNoReply   = errors.New("no assistant response found")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAI API error (status %d): %s", e.StatusCode, e.Body)
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	// Run polling starts at PollInterval and doubles up to MaxPollInterval.
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	MaxPollAttempts int
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultOpenAIBaseURL
	}
	return &Client{
		APIKey:          apiKey,
		BaseURL:         strings.TrimRight(baseURL, "/"),
		HTTPClient:      &http.Client{Timeout: constants.DefaultRelayTimeout},
		PollInterval:    constants.DefaultPollInterval,
		MaxPollInterval: constants.MaxPollInterval,
		MaxPollAttempts: constants.DefaultMaxPollAttempts,
	}
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any, assistants bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if assistants {
		req.Header.Set("OpenAI-Beta", "assistants=v2")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	return nil
}
