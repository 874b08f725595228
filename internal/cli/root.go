// Package cli implements the study-tracker CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rcliao/study-tracker/internal/catchup"
	"github.com/rcliao/study-tracker/internal/config"
	"github.com/rcliao/study-tracker/internal/logging"
	"github.com/rcliao/study-tracker/internal/model"
	"github.com/rcliao/study-tracker/internal/schedule"
	"github.com/rcliao/study-tracker/internal/store"
)

var (
	dbPath     string
	configPath string

	cfg       *config.Config
	logCloser = func() {}
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "study-tracker",
	Short: "Exam study planner with catch-up scheduling and bulk imports",
	Long: "A small CLI for tracking an exam study plan. Missed tasks are moved to the next off or " +
		"revision day; SBA tests and Telegram questions are bulk-imported after validation. SQLite-backed.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { logCloser() },
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $STUDY_TRACKER_DB, config db_path, or ~/.study-tracker/tracker.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $STUDY_TRACKER_CONFIG or ~/.study-tracker/config.yaml)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(getConfigPath())
	if err != nil {
		return err
	}
	cfg = c

	l, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	log.Logger = l
	logCloser = closer
	return nil
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("STUDY_TRACKER_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(config.DefaultDir(), "config.yaml")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("STUDY_TRACKER_DB"); env != "" {
		return env
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.DefaultConfig().DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func loadTemplate() (*schedule.Template, error) {
	if cfg != nil && cfg.TemplatePath != "" {
		return schedule.LoadTemplate(cfg.TemplatePath)
	}
	return schedule.DefaultTemplate()
}

func newScheduler() (*catchup.Scheduler, *schedule.Template, error) {
	tmpl, err := loadTemplate()
	if err != nil {
		return nil, nil, err
	}
	s := catchup.NewScheduler(tmpl)
	if cfg != nil {
		s.Window = cfg.CatchUp.ScanWindowDays
	}
	return s, tmpl, nil
}

func parseDateArg(name, value string) (time.Time, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format, got %q", name, value)
	}
	return d, nil
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	log.Debug().Err(err).Str("op", msg).Msg("command failed")
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
