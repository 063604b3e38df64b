// Package cli implements activationctl, an operator tool that reads a
// workspace's activation progress straight from the database.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/bootstrap"
	"github.com/rpggio/activation/internal/sqlite"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	dbPath      string
	tenantID    string
	workspaceID string
	nowFlag     string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "activationctl",
	Short: "Inspect activation progress and nudges",
	Long: `activationctl reads the activation database directly and reports where a
workspace stands in its 14-day onboarding cycle.

Use --now to evaluate the cycle at a fixed instant instead of the current time.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "activationctl %s\n", Version)
	},
}

func init() {
	defaultDB := os.Getenv("ACTIVATION_DB_PATH")
	if defaultDB == "" {
		defaultDB = "activation.db"
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dbPath, "db", defaultDB, "Path to the SQLite database")
	flags.StringVar(&tenantID, "tenant", "default", "Tenant that owns the workspace")
	flags.StringVar(&workspaceID, "workspace", "", "Workspace ID (default workspace when empty)")
	flags.StringVar(&nowFlag, "now", "", "Evaluate at this RFC3339 instant instead of the current time")
	flags.BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openApp opens the database and wires the services. Read commands require
// an existing database and never migrate it; write commands create and
// migrate it as needed. The caller closes the returned container's DB.
func openApp(write bool) (*bootstrap.Container, error) {
	var clock activation.Clock
	if nowFlag != "" {
		now, err := time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return nil, fmt.Errorf("parsing --now: %w", err)
		}
		clock = activation.FixedClock{T: now.UTC()}
	}

	if !write {
		if _, err := os.Stat(dbPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("database %s does not exist", dbPath)
			}
			return nil, fmt.Errorf("checking database: %w", err)
		}
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if write {
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	// No memo cache and no nudge_fired entries: reports leave the store as
	// they found it.
	return bootstrap.Wire(db, bootstrap.Options{Clock: clock}), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
