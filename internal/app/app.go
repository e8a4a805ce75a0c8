// Package app wires configuration, a dataset source, a catalog and the
// dispatch engine together. It provides lifecycle management for the carbot
// daemon: create, start, stop.
package app

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/corey/carbot/internal/adapters/ahocorasick"
	"github.com/corey/carbot/internal/adapters/bbolt"
	"github.com/corey/carbot/internal/adapters/socket"
	"github.com/corey/carbot/internal/adapters/web"
	"github.com/corey/carbot/internal/domain/dispatch"
	"github.com/corey/carbot/internal/ports"
)

// Config holds initialization parameters for the App.
type Config struct {
	Catalog     string
	DatasetPath string // YAML file; empty = bundled dataset
	DBPath      string // bbolt file; takes priority over DatasetPath
	SocketPath  string // only needed by Start
	HTTPPort    int    // 0 = no HTTP API
	Logger      *zap.Logger
}

// HTTPPortFile is where a daemon on sockPath records its HTTP port.
func HTTPPortFile(sockPath string) string {
	return strings.TrimSuffix(sockPath, ".sock") + ".http"
}

// App owns one catalog's dispatcher and, when started, the socket daemon
// serving it. The dataset and table never change after New, so Answer is
// safe for concurrent use.
type App struct {
	catalog    string
	source     string
	records    int
	dispatcher *dispatch.Dispatcher
	store      *bbolt.Store // non-nil while a bbolt dataset is held open
	log        *zap.Logger

	Server    *socket.Server
	WebServer *web.Server
	httpPort  int
}

// New loads the dataset, indexes it and builds the pattern table. A
// malformed pattern fails here, before any query is read.
func New(cfg Config) (*App, error) {
	if cfg.Catalog == "" {
		return nil, fmt.Errorf("catalog required")
	}
	if _, err := lookupCatalog(cfg.Catalog); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ds, store, err := openDataset(cfg)
	if err != nil {
		return nil, err
	}
	closeStore := func() {
		if store != nil {
			store.Close()
		}
	}

	rules, n, err := buildRules(ds)
	if err != nil {
		closeStore()
		return nil, err
	}
	table, err := dispatch.NewTable(rules)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("build %s pattern table: %w", ds.Catalog, err)
	}

	a := &App{
		catalog:    ds.Catalog,
		source:     ds.Source,
		records:    n,
		dispatcher: dispatch.NewDispatcher(table, dispatch.WithScanner(ahocorasick.Factory)),
		store:      store,
		log:        log.With(zap.String("catalog", ds.Catalog)),
	}
	a.log.Info("dataset loaded",
		zap.String("source", ds.Source),
		zap.Int("records", n),
		zap.Int("rules", table.Len()))

	if cfg.SocketPath != "" {
		a.Server = socket.NewServer(a, cfg.SocketPath, a.log)
		if cfg.HTTPPort != 0 {
			a.WebServer = web.NewServer(a, HTTPPortFile(cfg.SocketPath), a.log)
			a.httpPort = cfg.HTTPPort
		}
	}
	return a, nil
}

// Answer dispatches tokens. It implements ports.Answerer and socket.Backend.
func (a *App) Answer(tokens []string) (ports.Reply, error) {
	start := time.Now()
	reply, err := a.dispatcher.Dispatch(tokens)
	if err != nil {
		a.log.Warn("action failed", zap.Strings("tokens", tokens), zap.Error(err))
		return reply, err
	}
	a.log.Debug("dispatch",
		zap.Strings("tokens", tokens),
		zap.String("pattern", reply.Pattern),
		zap.Strings("captures", reply.Captures),
		zap.Bool("terminate", reply.Terminate),
		zap.Duration("elapsed", time.Since(start)))
	return reply, nil
}

// Patterns returns the pattern table in precedence order.
func (a *App) Patterns() []string { return a.dispatcher.Table().Patterns() }

// Catalog returns the catalog name.
func (a *App) Catalog() string { return a.catalog }

// RecordCount returns the number of indexed records.
func (a *App) RecordCount() int { return a.records }

// Source describes where the dataset came from.
func (a *App) Source() string { return a.source }

// Start begins serving on the configured socket, and over HTTP when a port
// was configured. The HTTP API is optional: failing to bind it is logged.
func (a *App) Start() error {
	if a.Server == nil {
		return fmt.Errorf("no socket path configured")
	}
	if err := a.Server.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	if a.WebServer != nil {
		if err := a.WebServer.Start(a.httpPort); err != nil {
			a.log.Warn("http api unavailable", zap.Error(err))
			a.WebServer = nil
		}
	}
	return nil
}

// Stop shuts the daemon down, if started, and releases the dataset store.
func (a *App) Stop() error {
	if a.WebServer != nil {
		a.WebServer.Stop()
	}
	if a.Server != nil {
		a.Server.Stop()
	}
	return a.Close()
}

// Close releases the dataset store. Safe to call more than once.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
