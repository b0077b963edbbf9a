// Package migration applies the numbered SQL files embedded in migrations/
// to a slot database and tracks the applied version in schema_version.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrSchemaTooNew means the database was migrated by a newer mindful.
var ErrSchemaTooNew = errors.New("database schema is newer than this version of mindful supports")

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Dialect selects the bind parameter style of the target database.
type Dialect int

const (
	// DialectSQLite binds with "?"
	DialectSQLite Dialect = iota
	// DialectPostgres binds with "$1"
	DialectPostgres
)

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Status compares the database against the available migrations.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// LogFunc receives progress messages; logger.Info fits.
type LogFunc func(msg string, keyvals ...any)

type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, fs: migrationFS, dialect: dialect}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}
	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrations parses every .sql file in the migration filesystem, sorted by
// version. Versions start at 1 and must be unique.
func (r *Runner) Migrations() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		m, err := r.parse(file.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

func (r *Runner) parse(name string) (Migration, error) {
	prefix, rest, ok := strings.Cut(name, "_")
	if !ok {
		return Migration{}, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return Migration{}, fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return Migration{}, fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to read migration file %s: %w", name, err)
	}
	return Migration{Version: version, Name: strings.TrimSuffix(rest, ".sql"), SQL: string(content)}, nil
}

func (r *Runner) Status() (Status, error) {
	current, err := r.CurrentVersion()
	if err != nil {
		return Status{}, err
	}
	all, err := r.Migrations()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	if len(all) > 0 {
		st.Latest = all[len(all)-1].Version
	}
	for _, m := range all {
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Check fails with ErrSchemaTooNew when the database is ahead of the
// embedded migrations.
func (r *Runner) Check() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	return st.check()
}

func (st Status) check() error {
	if st.Current > st.Latest {
		return fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, st.Current, st.Latest)
	}
	return nil
}

func (r *Runner) Pending() (int, error) {
	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	return len(st.Pending), nil
}

// Apply runs pending migrations in order, each in its own transaction
// together with the version bump. It returns how many were applied; on
// failure the database stays at the last successful version.
func (r *Runner) Apply(log LogFunc) (int, error) {
	if log == nil {
		log = func(string, ...any) {}
	}
	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	if err := st.check(); err != nil {
		return 0, err
	}
	if len(st.Pending) == 0 {
		log("Slot schema is up to date", "version", st.Current)
		return 0, nil
	}

	start := time.Now()
	for i, m := range st.Pending {
		if err := r.applyOne(m); err != nil {
			return i, err
		}
		log("Applied migration", "version", m.Version, "name", m.Name)
	}
	log("Slot schema migrated", "from", st.Current, "to", st.Latest, "took", time.Since(start))
	return len(st.Pending), nil
}

func (r *Runner) applyOne(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	insert := "INSERT INTO schema_version (version) VALUES (" + r.dialect.placeholder(1) + ")"
	if _, err := tx.Exec(insert, m.Version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
