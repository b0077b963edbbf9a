package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
)

// RelayError is a failed call to the relay: a transport failure, a non-2xx
// status, or a response body that does not decode.
type RelayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RelayError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("relay returned %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("relay returned %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("relay request failed: %v", e.Err)
	default:
		return "relay request failed"
	}
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Client calls a running relay. Cancelling ctx abandons the call; the relay
// may still finish the upstream work.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultRelayURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: constants.DefaultRelayTimeout + constants.MaxPollInterval},
	}
}

// Summarize sends the entries to /api/summary.
func (c *Client) Summarize(ctx context.Context, entries []models.JournalEntry) (models.Summary, error) {
	var out models.Summary
	err := c.post(ctx, "/api/summary", entries, &out)
	return out, err
}

// Chat sends a single message to /api/chat and returns the reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out models.ChatReply
	if err := c.post(ctx, "/api/chat", models.ChatRequest{Message: message}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// Healthy reports whether the relay answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return &RelayError{Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &RelayError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &RelayError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return &RelayError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return &RelayError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &RelayError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RelayError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErrorResponse
		_ = json.Unmarshal(body, &e)
		return &RelayError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &RelayError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
