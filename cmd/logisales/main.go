package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/logisales/internal/cli"
	"github.com/alexanderramin/logisales/internal/config"
	"github.com/alexanderramin/logisales/internal/db"
	"github.com/alexanderramin/logisales/internal/logging"
	"github.com/alexanderramin/logisales/internal/repository"
	"github.com/alexanderramin/logisales/internal/seed"
	"github.com/alexanderramin/logisales/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("command history disabled", "err", err)
	}

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		Currency:    cfg.Currency,
		Logger:      logger,
		HistoryPath: historyPath,
	}

	// Settings are opened lazily so "seed check" works without a dataset.
	app.Open = func(seedPath string) (service.SettingsService, error) {
		if seedPath == "" {
			seedPath = cfg.SeedPath
		}
		state, err := seed.LoadState(seedPath)
		if err != nil {
			return nil, err
		}
		logger.Info("dataset loaded", "seed", seedLabel(seedPath), "employees", len(state.Employees))

		observer := service.NewLogUseCaseObserver(logger)
		if !cfg.SinkEnabled() {
			logger.Info("saving disabled")
			return service.NewSettingsService(state, nil, observer), nil
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening save store: %w", err)
		}
		sink := service.NewSQLiteSink(db.NewSQLiteUnitOfWork(database), repository.NewSQLiteSavedSettingsRepo(database))
		return service.NewSettingsService(state, sink, observer), nil
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		logger.Error("command failed", slog.Any("err", err))
		return err
	}
	return nil
}

func seedLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
