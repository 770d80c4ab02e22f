package main

import (
	"context"
	"fmt"
	"os"

	"tango/internal/config"
	"tango/internal/repository"
	"tango/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every command shares once the root pre-run is done
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tango",
		Short: "tanGo - english/japanese vocabulary trainer",
		Long: `tanGo keeps one english/japanese word list and drills it.

Import a tab-separated file, then study it with flashcards or a typed quiz,
either in the terminal or through the Telegram bot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newImportCmd(a),
		newWordsCmd(a),
		newQuizCmd(a),
		newMigrateCmd(a),
	)

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}
	a.logger = logger

	logger.Debug("Configuration loaded",
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("store_key", cfg.Store.Key),
	)
	return nil
}

// newLogger builds the production logger at the configured level
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}

// services wires the word pipeline on top of an open store
type services struct {
	store    *service.WordStore
	importer *service.ImportService
	study    *service.StudyService
	stats    *service.StatsService
	users    repository.UserRepository
}

func (a *app) openServices(ctx context.Context) (*services, func(), error) {
	st, err := openStore(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}

	store := service.NewWordStore(st.kv, a.cfg.Store.Key, a.logger)
	return &services{
		store:    store,
		importer: service.NewImportService(store, service.NewWordConverter(), a.logger),
		study:    service.NewStudyService(store, nil, a.logger),
		stats:    service.NewStatsService(store, a.logger),
		users:    st.users,
	}, st.close, nil
}
