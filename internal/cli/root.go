package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/mindful/internal/analytics"
	"github.com/julianstephens/mindful/internal/backup"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/keyring"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/relay"
	"github.com/julianstephens/mindful/internal/storage"
	"github.com/julianstephens/mindful/internal/storage/postgres"
	"github.com/julianstephens/mindful/internal/storage/sqlite"
	"github.com/julianstephens/mindful/internal/utils"
)

type Context struct {
	Slot      storage.Slot
	Store     *journal.Store
	Memo      *analytics.Memo
	Now       func() time.Time
	RelayURL  string
	ConfigDir string
}

// NewContext wires an entry store over slot. now may be nil.
func NewContext(slot storage.Slot, now func() time.Time) *Context {
	if now == nil {
		now = time.Now
	}
	return &Context{
		Slot:     slot,
		Store:    journal.New(slot, journal.WithClock(now)),
		Memo:     analytics.NewMemo(),
		Now:      now,
		RelayURL: constants.DefaultRelayURL,
	}
}

// Location is the zone calendar days are evaluated in.
func (c *Context) Location() *time.Location {
	return c.Now().Location()
}

// Relay returns a client for the configured summary relay.
func (c *Context) Relay() *relay.Client {
	return relay.NewClient(c.RelayURL)
}

// Backups returns a backup manager for file-backed slots, or nil when the
// slot lives in a database server or in memory.
func (c *Context) Backups() *backup.Manager {
	path := c.Slot.GetConfigPath()
	if path == "" || path == "memory" || path == "postgresql" || isPostgres(path) {
		return nil
	}
	return backup.NewManager(path)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.Backups()
	if mgr == nil {
		return
	}
	if _, err := os.Stat(c.Slot.GetConfigPath()); err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveConfig picks the slot location. An explicit config wins; otherwise
// a connection string from the environment or the OS keyring is used, and
// finally the default SQLite path. secret reports whether the result came
// from the environment or keyring, where embedded passwords are accepted.
func ResolveConfig(config string, explicit bool) (resolved string, secret bool) {
	if explicit {
		return config, false
	}
	if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
		return connStr, true
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil {
		return connStr, true
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup skipped", "error", err)
	}
	return config, false
}

func isPostgres(config string) bool {
	return postgres.IsConnString(config) || strings.Contains(config, "host=")
}

// OpenSlot selects the storage backend for config: a PostgreSQL URI or DSN,
// a *.json file, or a SQLite database path. Connection strings given on the
// command line must not embed a password unless allowCredentials is set.
func OpenSlot(config string, allowCredentials bool) (storage.Slot, error) {
	if isPostgres(config) {
		err := postgres.ValidateConnString(config)
		if errors.Is(err, postgres.ErrEmbeddedCredentials) && !allowCredentials {
			return nil, fmt.Errorf("%w; store credentials in ~/.pgpass, PGPASSWORD, or use 'mindful keyring set-db'", err)
		}
		if err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONSlot(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ConfigDir returns the directory holding logs, locks and backups for config.
func ConfigDir(config string) string {
	if isPostgres(config) {
		path, _ := utils.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
		return path
	}
	path, err := utils.ExpandPath(config)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}

// FindEntry resolves an entry by full id or by a unique id prefix, as shown
// in listings.
func (c *Context) FindEntry(id string) (models.JournalEntry, error) {
	if e, err := c.Store.Get(id); err == nil {
		return e, nil
	}
	if len(id) < 4 {
		return models.JournalEntry{}, fmt.Errorf("%w: %s", journal.ErrNotFound, id)
	}

	var matches []models.JournalEntry
	for _, e := range c.Store.GetAll() {
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return models.JournalEntry{}, fmt.Errorf("%w: %s", journal.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return models.JournalEntry{}, fmt.Errorf("id prefix %q matches %d entries", id, len(matches))
	}
}
