package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/studentbook/studentbook/config"
	"github.com/studentbook/studentbook/internal/application/logic"
	"github.com/studentbook/studentbook/internal/domain/addressbook"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/badger"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/guarded"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/jsonfile"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/postgres"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/redis"
	"github.com/studentbook/studentbook/internal/interface/cli/parser"
	"github.com/studentbook/studentbook/internal/interface/cli/shell"
	"github.com/studentbook/studentbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBCOMMANDS
// ══════════════════════════════════════════════════════════════════════════════

func runShell(cmd *cobra.Command, _ []string) error {
	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)

	a, err := bootstrap(cmd.Context(), interactive)
	if err != nil {
		return err
	}
	defer a.close()

	if !interactive {
		return shell.RunLines(cmd.Context(), a.logic, os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	shellCfg := shell.DefaultConfig()
	shellCfg.Debounce = a.cfg.Shell.Debounce
	shellCfg.LiveSearch = a.cfg.Features.LiveSearch()
	return shell.Run(cmd.Context(), a.logic, shellCfg)
}

func runExec(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	in := strings.NewReader(strings.Join(args, "\n") + "\n")
	var failed countingWriter
	errOut := io.MultiWriter(cmd.ErrOrStderr(), &failed)
	if err := shell.RunLines(cmd.Context(), a.logic, in, cmd.OutOrStdout(), errOut); err != nil {
		return err
	}
	if failed.n > 0 {
		return errors.New("one or more commands failed")
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	shell.WritePersons(cmd.OutOrStdout(), a.logic.FilteredPersons())
	return nil
}

// countingWriter counts writes, one per reported command failure.
type countingWriter struct{ n int }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n++
	return len(p), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// BOOTSTRAP
// ══════════════════════════════════════════════════════════════════════════════

type app struct {
	cfg     *config.Config
	log     *logger.Logger
	logic   *logic.Logic
	logFile *os.File
}

// bootstrap loads configuration, opens the store and builds the logic.
// With toFile set, logs go to the configured log file instead of stderr.
func bootstrap(ctx context.Context, toFile bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	out := io.Writer(os.Stderr)
	if toFile {
		f, err := os.OpenFile(cfg.Observability.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		out = f
	}
	level := logger.ParseLevel(cfg.Observability.LogLevel)
	a.log = logger.New(logger.Options{Output: out, Level: level}).
		With(logger.String("app", cfg.App.Name), logger.String("version", cfg.App.Version))

	slogLevel := slog.LevelInfo
	if level == logger.LevelDebug {
		slogLevel = slog.LevelDebug
	}
	slogger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slogLevel}))

	store, err := openStore(ctx, cfg, a.log)
	if err != nil {
		a.close()
		return nil, err
	}

	p := parser.New(parser.Config{
		Logger:             slogger,
		Debug:              level == logger.LevelDebug,
		AllowLessonOverlap: !cfg.Features.LessonOverlapCheck(),
	})

	a.logic, err = logic.New(ctx, logic.Config{Store: store, Parser: p, Logger: a.log})
	if err != nil {
		store.Close()
		a.close()
		return nil, fmt.Errorf("load address book: %w", err)
	}

	a.log.Info("studentbook started", logger.StorageDriver(cfg.Storage.Driver))
	return a, nil
}

func (a *app) close() {
	if a.logic != nil {
		if err := a.logic.Close(); err != nil {
			a.log.Warn("closing store failed", logger.Err(err))
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// loadConfig loads configuration and applies command-line flags over it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.Options{EnvFile: ".env", ConfigFile: flagConfig})
	if err != nil {
		return nil, err
	}

	if flagStorage != "" {
		cfg.Storage.Driver = strings.ToLower(flagStorage)
	}
	if flagData != "" {
		switch cfg.Storage.Driver {
		case config.DriverBadger:
		bc := badger.DefaultConfig(sc.BadgerPath)
		bc.Logger = log
		store, err := badger.Open(bc)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(ctx, sc.ConnectTimeout)
		defer cancel()
		store, err := postgres.Open(ctx, sc.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return guarded.New(store, config.DriverPostgres, log), nil

	case config.DriverRedis:
		rc := redis.DefaultConfig()
		rc.Addr = sc.RedisAddr
		rc.Password = sc.RedisPassword
		rc.DB = sc.RedisDB
		rc.Key = sc.RedisKey
		ctx, cancel := context.WithTimeout(ctx, sc.ConnectTimeout)
		defer cancel()
		store, err := redis.Open(ctx, rc, log)
		if err != nil {
			return nil, err
		}
		return guarded.New(store, config.DriverRedis, log), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
