package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/wbs/internal/cli"
	"github.com/alexanderramin/wbs/internal/config"
	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/repository"
	"github.com/alexanderramin/wbs/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	statuses := cfg.StatusSet()

	var repo repository.DatasetRepo
	switch cfg.Backend {
	case config.BackendSQLite:
		var database *sql.DB
		database, err = db.OpenDB(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		repo = repository.NewSQLiteDatasetRepo(database, db.NewSQLiteUnitOfWork(database), statuses)
	default:
		repo = repository.NewJSONDatasetRepo(cfg.DataPath, statuses)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observer service.UseCaseObserver
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	session, err := service.OpenSession(context.Background(), repo, service.SessionOptions{
		Statuses: statuses,
		Logger:   logger,
	}, observer)
	if err != nil {
		return err
	}

	app := &cli.App{
		WBS:      service.NewWBSService(session),
		Tasks:    service.NewTaskService(session),
		Views:    service.NewViewService(session),
		Statuses: session.Statuses(),
		Indent:   cfg.Indent,
		Today:    session.Today,
	}

	// Forms only run when a person is at the keyboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
