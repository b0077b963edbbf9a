package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/backups"
	"github.com/julianstephens/mindful/internal/cli/entries"
	"github.com/julianstephens/mindful/internal/cli/insights"
	"github.com/julianstephens/mindful/internal/cli/system"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/errors"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Journal location: SQLite path, *.json file, or PostgreSQL connection string. Credentials must NOT be embedded in the connection string; use .pgpass, MINDFUL_DB_CONNECTION or 'mindful keyring set-db'." type:"string" default:"${default_config}"`
	Debug    bool   `help:"Enable debug logging to stderr."`
	Timezone string `help:"IANA timezone calendar days are evaluated in." default:"Local"`
	RelayURL string `help:"Base URL of the summary relay." env:"MINDFUL_RELAY_URL" default:"${default_relay}" name:"relay-url"`

	Init   system.InitCmd   `cmd:"" help:"Initialize mindful storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive journal." default:"1"`
	Serve  system.ServeCmd  `cmd:"" help:"Run the summary relay server."`

	New    entries.EntryAddCmd    `cmd:"" help:"Write a new entry."`
	Edit   entries.EntryEditCmd   `cmd:"" help:"Edit an entry."`
	Delete entries.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	List   entries.EntryListCmd   `cmd:"" help:"List entries, newest first."`
	Show   entries.EntryShowCmd   `cmd:"" help:"Show a single entry."`
	Tags   entries.TagsCmd        `cmd:"" help:"List tags in use."`
	Export entries.ExportCmd      `cmd:"" help:"Export all entries as JSON."`
	Import entries.ImportCmd      `cmd:"" help:"Replace all entries from an exported JSON file."`

	Stats        insights.StatsCmd        `cmd:"" help:"Show this week's dashboard."`
	Trend        insights.TrendCmd        `cmd:"" help:"Show the daily mood trend."`
	Achievements insights.AchievementsCmd `cmd:"" help:"Show unlocked achievements."`
	Summary      insights.SummaryCmd      `cmd:"" help:"Generate an AI summary of your journal."`
	Chat         insights.ChatCmd         `cmd:"" help:"Ask the wellness assistant a question."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
	Keyring struct {
		SetAPIKey system.KeyringSetAPIKeyCmd `cmd:"" help:"Store the OpenAI API key." name:"set-api-key"`
		SetDB     system.KeyringSetDBCmd     `cmd:"" help:"Store a PostgreSQL connection string." name:"set-db"`
		GetDB     system.KeyringGetDBCmd     `cmd:"" help:"Show the stored connection string (masked)." name:"get-db"`
		Delete    system.KeyringDeleteCmd    `cmd:"" help:"Remove stored secrets."`
		Status    system.KeyringStatusCmd    `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

// Commands that manage storage themselves or do not touch it.
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"serve":   true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A mindful journal for daily reflection, mood tracking and weekly insight"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"default_relay":  constants.DefaultRelayURL,
		},
	)

	command := strings.Fields(ctx.Command())[0]

	config, fromSecretStore := cli.ResolveConfig(CLI.Config, CLI.Config != constants.DefaultConfigPath)
	configDir := cli.ConfigDir(config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Stderr:    command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	if !utils.ValidateTimezone(CLI.Timezone) {
		errors.Fatalf("invalid timezone %q", CLI.Timezone)
	}
	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	slot, err := cli.OpenSlot(config, fromSecretStore)
	if err != nil {
		errors.Fatal(err)
	}
	defer slot.Close()

	appCtx := cli.NewContext(slot, func() time.Time { return time.Now().In(loc) })
	appCtx.RelayURL = CLI.RelayURL
	appCtx.ConfigDir = configDir

	// Load the store before running the command (init handles its own loading)
	if !skipLoad[command] {
		if err := slot.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		slot.Close()
		errors.Fatal(err)
	}
}
