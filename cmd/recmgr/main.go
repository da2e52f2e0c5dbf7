package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"recmgr/internal/app"
	"recmgr/internal/config"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file from its default location.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "DeleteRecorded").
func newApp(operation string, args []string) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, operation, strings.Join(args, " "), app.Options{Verbose: verbose})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "recmgr",
	Short:        "Recorded content lifecycle manager",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if _, err := app.Migrate(cfg); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:       %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:        %s\n", cfg.LogDir)
		fmt.Printf("Thumbnail Dir:  %s\n", cfg.Thumbnail)
		fmt.Printf("Drop Log Dir:   %s\n", cfg.DropLog)
		fmt.Printf("Database:       %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Events:         %s\n", cfg.Events.Type)
		fmt.Printf("History Retain: %d day(s)\n", cfg.RecordedHistoryRetentionPeriodDays)
		if len(cfg.Filesystem.Ignore) > 0 {
			fmt.Printf("Ignore:         %s\n", strings.Join(cfg.Filesystem.Ignore, ", "))
		}
		fmt.Println()

		rows := make([][]string, 0, len(cfg.Recorded))
		for _, r := range cfg.Recorded {
			rows = append(rows, []string{r.Name, r.Path})
		}
		fmt.Println(renderTable([]string{"Alias", "Path"}, rows, nil))

		if err := cfg.Validate(); err != nil {
			fmt.Printf("\nConfiguration is invalid:\n%v\n", err)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory", args)
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		rows := make([][]string, 0, len(ops))
		for _, op := range ops {
			duration := ""
			status := op.Status
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			} else {
				status = "running"
			}
			rows = append(rows, []string{
				strconv.FormatInt(op.ID, 10),
				op.Operation,
				op.Parameters,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				status,
				duration,
			})
		}
		fmt.Println(renderTable(
			[]string{"#", "Operation", "Parameters", "Started", "Status", "Duration"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		))
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Maintain the record store",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applied, err := app.Migrate(cfg)
		if err != nil {
			return err
		}
		if applied == 0 {
			fmt.Println("Database is up to date.")
		} else {
			fmt.Printf("Applied %d migration(s).\n", applied)
		}
		return nil
	},
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup DEST",
	Short: "Write a copy of the record store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("BackupDatabase", args)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.BackupDatabase(args[0]); err != nil {
			return fmt.Errorf("backing up database: %w", err)
		}
		fmt.Printf("Database written to %s\n", args[0])
		return nil
	},
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug entries to the log")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// db subcommands
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbBackupCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(recordedCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(dbCmd)
}
