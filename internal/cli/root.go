// Package cli implements the hsktrainer CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/miickii/HSKTrainer-sub000/internal/config"
	"github.com/miickii/HSKTrainer-sub000/internal/database"
	"github.com/miickii/HSKTrainer-sub000/internal/transfer"
	"github.com/miickii/HSKTrainer-sub000/internal/vocab"
)

// Settings-table keys owned by the CLI.
const (
	settingActiveLevels  = "active_levels"
	settingPreferOffline = "prefer_offline"
)

var (
	dbPathFlag string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "hsktrainer",
	Short: "Offline HSK vocabulary trainer",
	Long:  "Spaced-repetition practice for HSK vocabulary. Entirely offline, sqlite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPathFlag, "db", "d", "", "Database path (default: $HSK_DB_PATH or data/hsktrainer.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// app bundles everything a command needs, opened once per invocation.
type app struct {
	cfg      *config.Config
	db       *sqlx.DB
	log      *zap.Logger
	words    *database.WordStore
	settings *database.SettingsStore
	repo     *vocab.Repository
	transfer *transfer.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPathFlag != "" {
		cfg.Database.Path = dbPathFlag
	}

	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		db:       db,
		log:      log,
		words:    database.NewWordStore(db, log),
		settings: database.NewSettingsStore(db),
	}

	// Settings stored by the app override the environment defaults.
	if err := a.applySettings(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.repo = vocab.New(a.words, vocab.Config{
		ActiveLevels:  cfg.ActiveLevels,
		PreferOffline: cfg.PreferOffline,
	}, log)
	a.transfer = transfer.New(a.words, log)
	return a, nil
}

func (a *app) applySettings(ctx context.Context) error {
	if raw, err := a.settings.Get(ctx, settingActiveLevels); err != nil {
		return err
	} else if raw != "" {
		levels, err := config.ParseLevels(raw)
		if err != nil {
			a.log.Warn("ignoring bad active_levels setting", zap.String("value", raw), zap.Error(err))
		} else {
			a.cfg.ActiveLevels = levels
		}
	}

	if raw, err := a.settings.Get(ctx, settingPreferOffline); err != nil {
		return err
	} else if raw != "" {
		offline, err := strconv.ParseBool(raw)
		if err != nil {
			a.log.Warn("ignoring bad prefer_offline setting", zap.String("value", raw), zap.Error(err))
		} else {
			a.cfg.PreferOffline = offline
		}
	}
	return nil
}

func (a *app) close() {
	_ = a.log.Sync()
	if err := a.db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing database: %v\n", err)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
