package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/tasklog/internal/config"
	"github.com/sandeepkv93/tasklog/internal/planner"
	"github.com/sandeepkv93/tasklog/internal/records"
	"github.com/sandeepkv93/tasklog/internal/storage"
)

// env holds everything a command needs: resolved config, an open database
// and the record service on top of it.
type env struct {
	cfg     config.Config
	repo    *storage.SQLiteRepository
	svc     *records.Service
	logger  *log.Logger
	logFile io.Closer
}

func openEnv(opts *rootOptions) (*env, error) {
	path := opts.configPath
	if path == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, config.DefaultConfigFileName)
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = config.FromEnv(cfg)
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	e := &env{cfg: cfg, logger: log.New(io.Discard, "", 0)}
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		e.logFile = f
		e.logger = log.New(f, "tasklog ", log.LstdFlags)
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			e.Close()
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.repo = repo

	svcOpts := []records.Option{records.WithLogger(e.logger)}
	if strings.TrimSpace(cfg.Planner.APIKey) != "" {
		svcOpts = append(svcOpts, records.WithPlanner(planner.NewHTTPGenerator(cfg.Planner.URL, cfg.Planner.Model, cfg.Planner.APIKey)))
	}
	e.svc = records.NewService(repo, svcOpts...)
	e.logger.Printf("opened %s", cfg.DBPath)
	return e, nil
}

func (e *env) Close() error {
	var errs []error
	if e.repo != nil {
		errs = append(errs, e.repo.Close())
	}
	if e.logFile != nil {
		errs = append(errs, e.logFile.Close())
	}
	return errors.Join(errs...)
}
