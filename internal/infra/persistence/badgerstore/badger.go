// Package badgerstore contains the concrete implementation of the
// persistence layer using BadgerDB, an embedded key-value store. It plays
// the role browser-local storage plays for the dashboard front end: a small
// namespaced store surviving restarts on the same machine.
package badgerstore

import (
	"context"
	"fmt"
	"log/slog"

	"crmdash/config"
	"crmdash/internal/errors"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the BadgerDB instance backing the credential store.
func New(params Params) (*badger.DB, error) {
	cfg := params.Config.Session

	opts := badger.DefaultOptions(cfg.StorePath).
		WithInMemory(cfg.InMemory).
		WithLogger(&badgerLogger{logger: params.Logger})
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session store")
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.Wrap(db.Close(), "failed to close session store")
		},
	})

	return db, nil
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
