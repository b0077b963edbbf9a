package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/keyring"
	"github.com/julianstephens/mindful/internal/storage/postgres"
)

// KeyringSetAPIKeyCmd stores the model API key used by 'mindful serve'
type KeyringSetAPIKeyCmd struct {
	Key string `arg:"" help:"OpenAI API key."`
}

func (cmd *KeyringSetAPIKeyCmd) Run(ctx *cli.Context) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("✓ API key stored in OS keyring")
	return nil
}

// KeyringSetDBCmd stores database connection credentials in the OS keyring
type KeyringSetDBCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetDBCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  You can now use mindful without the --config flag")
	return nil
}

// KeyringGetDBCmd prints the stored connection string with any password masked
type KeyringGetDBCmd struct{}

func (cmd *KeyringGetDBCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'mindful keyring set-db' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	fmt.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes stored secrets from the OS keyring
type KeyringDeleteCmd struct {
	APIKey bool `help:"Delete only the API key." name:"api-key"`
	DB     bool `help:"Delete only the connection string." name:"db"`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	both := !cmd.APIKey && !cmd.DB
	deleted := 0

	if cmd.APIKey || both {
		switch err := keyring.DeleteAPIKey(); {
		case err == nil:
			fmt.Println("✓ API key deleted from OS keyring")
			deleted++
		case !errors.Is(err, keyring.ErrNotFound):
			return err
		}
	}
	if cmd.DB || both {
		switch err := keyring.DeleteConnectionString(); {
		case err == nil:
			fmt.Println("✓ Connection string deleted from OS keyring")
			deleted++
		case !errors.Is(err, keyring.ErrNotFound):
			return err
		}
	}

	if deleted == 0 {
		return errors.New("nothing stored in keyring")
	}
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")

	for _, item := range []struct {
		name string
		get  func() (string, error)
	}{
		{"API key", keyring.GetAPIKey},
		{"Connection string", keyring.GetConnectionString},
	} {
		if _, err := item.get(); err == nil {
			fmt.Printf("✓ %s is stored in keyring\n", item.name)
		} else {
			fmt.Printf("ℹ No %s stored in keyring\n", strings.ToLower(item.name))
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return connStr
}
