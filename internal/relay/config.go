package relay

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/keyring"
	"github.com/julianstephens/mindful/internal/logger"
)

// Config holds the relay's runtime settings.
type Config struct {
	Port            string
	APIKey          string
	AssistantID     string
	Model           string
	BaseURL         string
	Timeout         time.Duration
	MaxPollAttempts int
}

// LoadConfig reads settings from the environment after loading envFile (when
// it exists). A missing OPENAI_API_KEY falls back to the OS keyring.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:            envOr(constants.EnvPort, constants.DefaultRelayPort),
		APIKey:          os.Getenv(constants.EnvAPIKey),
		AssistantID:     os.Getenv(constants.EnvAssistantID),
		Model:           envOr(constants.EnvModel, constants.DefaultSummaryModel),
		BaseURL:         envOr(constants.EnvBaseURL, constants.DefaultOpenAIBaseURL),
		Timeout:         constants.DefaultRelayTimeout,
		MaxPollAttempts: constants.DefaultMaxPollAttempts,
	}

	if cfg.APIKey == "" {
		key, err := keyring.GetAPIKey()
		switch {
		case err == nil:
			cfg.APIKey = key
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Warn("Could not read API key from keyring", "error", err)
		}
	}

	return cfg, nil
}

// Validate checks the settings needed to serve requests. The assistant id
// is only required by the chat endpoint and is not checked here.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s is not set; export it or run 'mindful keyring set-api-key'", constants.EnvAPIKey)
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
