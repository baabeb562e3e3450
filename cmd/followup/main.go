package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/fisk/followup/internal/config"
	"github.com/fisk/followup/internal/db"
	"github.com/fisk/followup/internal/handlers"
	applog "github.com/fisk/followup/internal/logger"
	"github.com/fisk/followup/internal/services"
	"github.com/fisk/followup/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()

	log, err := applog.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	opts := db.Options{Path: cfg.DBPath}
	if cfg.LogLevel == "debug" {
		opts.LogLevel = logger.Info
	}
	conn, err := db.Open(opts, log)
	if err != nil {
		log.Error("open database", zap.String("path", cfg.DBPath), zap.Error(err))
		fmt.Fprintln(os.Stderr, handlers.Message(err))
		return 1
	}
	defer func() { _ = db.Close(conn) }()

	st := store.New(conn, log)
	app := &handlers.App{
		Cfg:      cfg,
		Log:      log,
		Store:    st,
		Contacts: services.NewContacts(st, log),
		Out:      os.Stdout,
		Err:      os.Stderr,
	}
	if err := app.Run(args); err != nil {
		if errors.Is(err, handlers.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		log.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, handlers.Message(err))
		return 1
	}
	return 0
}
