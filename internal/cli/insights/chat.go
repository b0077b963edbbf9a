package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mindful/internal/cli"
)

type ChatCmd struct {
	Message []string      `arg:"" help:"Message for the wellness assistant."`
	Timeout time.Duration `help:"Give up waiting for the relay after this long." default:"2m"`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	message := strings.TrimSpace(strings.Join(c.Message, " "))
	if message == "" {
		return errors.New("message cannot be empty")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	var reply string
	err := runWithSpinner(reqCtx, "Thinking...", func(rc context.Context) error {
		r, err := ctx.Relay().Chat(rc, message)
		reply = r
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to get a reply: %w", err)
	}

	fmt.Println(reply)
	return nil
}
