package constants

import "time"

const (
	AppName           = "mindful"
	DefaultConfigPath = "~/.config/mindful/mindful.db"
	Version           = "v0.1.0"

	// StorageKey names the single slot that holds the serialized entry collection.
	StorageKey = "journal_entries"

	// DateFormat is the calendar-day format used for day keys (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EntryDateFormat is the ISO 8601 layout written into JournalEntry.Date
	EntryDateFormat = "2006-01-02T15:04:05.000Z07:00"

	// Keyring
	KeyringDBUser     = "database-connection"
	KeyringAPIKeyUser = "openai-api-key"

	// Environment
	EnvDBConnection = "MINDFUL_DB_CONNECTION"
	EnvRelayURL     = "MINDFUL_RELAY_URL"
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvAssistantID  = "OPENAI_ASSISTANT_ID"
	EnvModel        = "OPENAI_MODEL"
	EnvBaseURL      = "OPENAI_BASE_URL"
	EnvPort         = "PORT"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mindful-"

	// Lock file guarding outstanding summary requests
	SummaryLockName = "summary.lock"

	// Analytics
	TopTagLimit      = 5
	DefaultTrendDays = 7
)

// Relay defaults
const (
	DefaultRelayPort       = "3001"
	DefaultRelayURL        = "http://localhost:3001"
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultSummaryModel    = "gpt-4o-mini"
	SummaryTemperature     = 0.7
	SummaryMaxTokens       = 2000
	DefaultPollInterval    = 1 * time.Second
	MaxPollInterval        = 8 * time.Second
	DefaultMaxPollAttempts = 30
	DefaultRelayTimeout    = 2 * time.Minute
	RelayBodyLimit         = 4 * 1024 * 1024
)
