package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/gdc/internal/config"
	"github.com/AI2HU/gdc/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gdc configuration",
	Long:  `Interactive wizard to set up gdc configuration including the counter store, API server and export schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd.Context(), newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
	},
}

// defaultURIs suggests a connection string per provider
var defaultURIs = map[string]string{
	"memory":   "",
	"file":     "data",
	"sqlite":   "gdc.db",
	"postgres": "postgres://localhost:5432/gdc?sslmode=disable",
	"mongodb":  "mongodb://localhost:27017",
	"redis":    "localhost:6379",
}

func runInit(ctx context.Context, p *prompter, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	banner(out, "🎮 Welcome to gdc - Gamer Didik Channel Setup")

	configPath := cfgFile
	if configPath == "" {
		configPath = config.GetConfigPath()
	}
	if config.Exists(configPath) {
		fmt.Fprintf(out, "Configuration file already exists at: %s\n", configPath)
		confirmed, err := p.yesNo("Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	c := config.DefaultConfig()

	fmt.Fprintln(out, "\n📺 Site")
	fmt.Fprintln(out, "--------")

	name, err := p.optional(fmt.Sprintf("Site name [%s]: ", c.Site.Name), c.Site.Name, nil)
	if err != nil {
		return err
	}
	c.Site.Name = name

	namespace, err := p.optional(fmt.Sprintf("View counter namespace [%s]: ", c.Site.Namespace), c.Site.Namespace, validateNamespace)
	if err != nil {
		return err
	}
	c.Site.Namespace = namespace

	fmt.Fprintln(out, "\n📊 Counter Store")
	fmt.Fprintln(out, "-----------------")

	provider, err := p.optional(fmt.Sprintf("Provider (%s) [sqlite]: ", strings.Join(db.Providers, "/")), "sqlite", validateProvider)
	if err != nil {
		return err
	}
	c.CounterStore.Provider = provider

	if provider != "memory" {
		def := defaultURIs[provider]
		uri, err := p.optional(fmt.Sprintf("URI [%s]: ", def), def, nil)
		if err != nil {
			return err
		}
		c.CounterStore.URI = uri
	}

	if provider == "postgres" || provider == "mongodb" {
		dbName, err := p.optional("Database name [gdc]: ", "gdc", nil)
		if err != nil {
			return err
		}
		c.CounterStore.Database = dbName
	}

	if provider == "file" {
		encrypt, err := p.yesNo("Encrypt the counter file with a passphrase? (y/N): ")
		if err != nil {
			return err
		}
		if encrypt {
			passphrase, err := p.ask("Passphrase: ", func(input string) (string, error) {
				if input == "" {
					return "", fmt.Errorf("passphrase is required")
				}
				return input, nil
			})
			if err != nil {
				return err
			}
			c.CounterStore.Options = map[string]string{"passphrase": passphrase}
		}
	}

	fmt.Fprintf(out, "\n%s\n", FormatInfo("🔌 Testing counter store connection..."))
	if err := testStore(ctx, c); err != nil {
		fmt.Fprintf(out, "%s\n", FormatError("❌ "+err.Error()))
		keep, err := p.yesNo("Save the configuration anyway? (y/N): ")
		if err != nil {
			return err
		}
		if !keep {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	} else {
		fmt.Fprintf(out, "✅ Connected to %s store at %s\n", provider, maskSensitiveData(c.CounterStore.URI))
	}

	fmt.Fprintln(out, "\n🌐 API Server")
	fmt.Fprintln(out, "--------------")

	port, err := p.optional(fmt.Sprintf("Port [%d]: ", c.API.Port), strconv.Itoa(c.API.Port), numberValidator(1, 65535))
	if err != nil {
		return err
	}
	c.API.Port, _ = strconv.Atoi(port)

	fmt.Fprintln(out, "\n⏰ Dashboard Exports")
	fmt.Fprintln(out, "---------------------")

	dir, err := p.optional(fmt.Sprintf("Export directory [%s]: ", c.Exports.Directory), c.Exports.Directory, nil)
	if err != nil {
		return err
	}
	c.Exports.Directory = dir

	schedule, err := p.optional(fmt.Sprintf("Export schedule [%s]: ", c.Exports.Cron), c.Exports.Cron, validateCronExpression)
	if err != nil {
		return err
	}
	c.Exports.Cron = schedule

	if err := c.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "\n✅ Configuration saved to %s\n", configPath)
	fmt.Fprintf(out, "\n%s\n", FormatInfo("Next steps:"))
	fmt.Fprintln(out, "  gdc api            start the REST API")
	fmt.Fprintln(out, "  gdc stats overview print the dashboard headline")
	fmt.Fprintln(out, "  gdc run            export dashboards on schedule")
	return nil
}

// testStore opens and pings the configured store, then disconnects
func testStore(ctx context.Context, c *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeConfig := c.StoreConfig()
	s, err := db.Open(ctx, &storeConfig)
	if err != nil {
		return err
	}
	defer s.Disconnect(ctx)

	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("counter store ping failed: %w", err)
	}
	return nil
}
