package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julianstephens/mindful/internal/logger"
)

// Run statuses reported by the assistants API.
const (
	RunQueued         = "queued"
	RunInProgress     = "in_progress"
	RunCancelling     = "cancelling"
	RunCompleted      = "completed"
	RunFailed         = "failed"
	RunCancelled      = "cancelled"
	RunExpired        = "expired"
	RunIncomplete     = "incomplete"
	RunRequiresAction = "requires_action"
)

type Thread struct {
	ID string `json:"id"`
}

type Run struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error,omitempty"`
}

// pending reports whether the run may still make progress.
func (r Run) pending() bool {
	switch r.Status {
	case RunQueued, RunInProgress, RunCancelling:
		return true
	}
	return false
}

type ThreadMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text *struct {
			Value string `json:"value"`
		} `json:"text,omitempty"`
	} `json:"content"`
}

// Text returns the value of the first content part, or "".
func (m ThreadMessage) Text() string {
	if len(m.Content) == 0 || m.Content[0].Text == nil {
		return ""
	}
	return m.Content[0].Text.Value
}

type messageList struct {
	Data []ThreadMessage `json:"data"`
}

func (c *Client) CreateThread(ctx context.Context) (Thread, error) {
	var t Thread
	err := c.do(ctx, http.MethodPost, "/threads", map[string]any{}, &t, true)
	return t, err
}

func (c *Client) AddMessage(ctx context.Context, threadID, content string) error {
	body := Message{Role: "user", Content: content}
	return c.do(ctx, http.MethodPost, "/threads/"+threadID+"/messages", body, nil, true)
}

func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (Run, error) {
	var r Run
	body := map[string]string{"assistant_id": assistantID}
	err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs", body, &r, true)
	return r, err
}

func (c *Client) GetRun(ctx context.Context, threadID, runID string) (Run, error) {
	var r Run
	err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &r, true)
	return r, err
}

// ListMessages returns the thread's messages, newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	var list messageList
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages", nil, &list, true); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// WaitForRun polls the run until it leaves the pending states. The delay
// between polls doubles from PollInterval up to MaxPollInterval, and polling
// gives up with ErrPollLimit after MaxPollAttempts.
func (c *Client) WaitForRun(ctx context.Context, threadID, runID string) (Run, error) {
	interval := c.PollInterval
	for attempt := 1; ; attempt++ {
		run, err := c.GetRun(ctx, threadID, runID)
		if err != nil {
			return Run{}, err
		}
		logger.Debug("Polled assistant run", "run", runID, "status", run.Status, "attempt", attempt)

		if run.Status == RunCompleted {
			return run, nil
		}
		if !run.pending() {
			if run.LastError != nil {
				return run, fmt.Errorf("%w: %s (%s)", ErrRunFailed, run.Status, run.LastError.Message)
			}
			return run, fmt.Errorf("%w: %s", ErrRunFailed, run.Status)
		}
		if c.MaxPollAttempts > 0 && attempt >= c.MaxPollAttempts {
			return run, fmt.Errorf("%w (%d)", ErrPollLimit, c.MaxPollAttempts)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return run, ctx.Err()
		case <-timer.C:
		}
		interval = nextInterval(interval, c.MaxPollInterval)
	}
}

func nextInterval(cur, ceiling time.Duration) time.Duration {
	next := cur * 2
	if ceiling > 0 && next > ceiling {
		return ceiling
	}
	return next
}

// RunAssistant posts message to a new thread, runs the assistant on it and
// returns the text of the first assistant message. The remote run is not
// cancelled if ctx ends first.
func (c *Client) RunAssistant(ctx context.Context, assistantID, message string) (string, error) {
	thread, err := c.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	if err := c.AddMessage(ctx, thread.ID, message); err != nil {
		return "", fmt.Errorf("failed to add message: %w", err)
	}
	run, err := c.CreateRun(ctx, thread.ID, assistantID)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	logger.Info("Assistant run started", "thread", thread.ID, "run", run.ID)

	if _, err := c.WaitForRun(ctx, thread.ID, run.ID); err != nil {
		return "", err
	}

	messages, err := c.ListMessages(ctx, thread.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}
	for _, m := range messages {
		if m.Role == "assistant" {
			return m.Text(), nil
		}
	}
	return "", ErrNoReply
}
