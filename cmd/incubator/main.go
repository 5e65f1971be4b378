package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/incubator/internal/cli"
	"github.com/alexanderramin/incubator/internal/config"
	"github.com/alexanderramin/incubator/internal/db"
	"github.com/alexanderramin/incubator/internal/llm"
	"github.com/alexanderramin/incubator/internal/repository"
	"github.com/alexanderramin/incubator/internal/service"
	"github.com/alexanderramin/incubator/internal/session"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, serving(os.Args[1:]))
	slog.SetDefault(logger)

	// Telemetry is optional: without a database the coach still works.
	var calls repository.CallLogRepo
	observers := llm.MultiObserver{}
	llmCfg := llm.LoadConfig()
	if llmCfg.LogCalls {
		observers = append(observers, llm.NewLogObserver(logger))
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		logger.Warn("call log disabled", "path", cfg.DBPath, "error", err)
	} else {
		defer database.Close()
		repo := repository.NewSQLiteCallLogRepo(database)
		calls = repo
		observers = append(observers, repository.NewCallRecorder(repo, logger))
	}

	client, err := llm.NewClient(llmCfg)
	if err != nil {
		logger.Warn("no model backend, serving offline fallbacks", "provider", string(llmCfg.Provider), "error", err)
		client = nil
	}
	completion := llm.NewCompletionClient(client, llmCfg, observers)

	store := session.NewStore()
	app := &cli.App{
		Coach:    service.NewCoachService(store, completion, service.NewLogUseCaseObserver(logger)),
		Sessions: store,
		Model:    completion,
		Calls:    calls,
		Config:   cfg,
		Logger:   logger,
		In:       os.Stdin,
		Out:      os.Stdout,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}

// serving reports whether the first non-flag argument is the serve command.
func serving(args []string) bool {
	for _, a := range args {
		if len(a) > 0 && a[0] == '-' {
			continue
		}
		return a == "serve"
	}
	return false
}

// newLogger logs JSON to stdout for the server and text to stderr for the
// interactive commands, so logs never interleave with prompts.
func newLogger(cfg *config.Config, server bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if server {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	if cfg.SlogLevel() < slog.LevelWarn {
		opts.Level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
