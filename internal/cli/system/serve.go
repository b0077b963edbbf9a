package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/openai"
	"github.com/julianstephens/mindful/internal/relay"
)

type ServeCmd struct {
	Port            string        `help:"Port to listen on (env PORT)."`
	Model           string        `help:"Chat model for summaries (env OPENAI_MODEL)."`
	AssistantID     string        `help:"Assistant used by /api/chat (env OPENAI_ASSISTANT_ID)." name:"assistant-id"`
	EnvFile         string        `help:"Dotenv file loaded before reading the environment." default:".env" name:"env-file"`
	Timeout         time.Duration `help:"Upper bound on a single upstream request."`
	MaxPollAttempts int           `help:"Run status polls before /api/chat gives up."`
}

// config merges flags over the environment.
func (c *ServeCmd) config() (relay.Config, error) {
	cfg, err := relay.LoadConfig(c.EnvFile)
	if err != nil {
		return cfg, err
	}
	if c.Port != "" {
		cfg.Port = c.Port
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.AssistantID != "" {
		cfg.AssistantID = c.AssistantID
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	if c.MaxPollAttempts > 0 {
		cfg.MaxPollAttempts = c.MaxPollAttempts
	}
	return cfg, cfg.Validate()
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if cfg.AssistantID == "" {
		logger.Warn("No assistant configured, /api/chat will fail until OPENAI_ASSISTANT_ID is set")
	}

	client := openai.NewClient(cfg.APIKey, cfg.BaseURL)
	client.MaxPollAttempts = cfg.MaxPollAttempts
	client.HTTPClient.Timeout = cfg.Timeout

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Summary relay listening on :%s (Ctrl+C to stop)\n", cfg.Port)
	return relay.NewServer(cfg, client).Run(runCtx)
}
