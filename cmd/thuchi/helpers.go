package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/thuchi/internal/classifier"
	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/config"
	"github.com/Veraticus/thuchi/internal/engine"
	"github.com/Veraticus/thuchi/internal/service"
	"github.com/Veraticus/thuchi/internal/storage"
)

// app is the wired set of services a command works with.
type app struct {
	cfg        *config.Config
	store      *storage.SQLiteStorage
	classifier *classifier.Service
	engine     *engine.Engine
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// initStorage opens and migrates the configured database.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSnapshots picks the snapshot backend named by classifier.snapshot_backend.
func initSnapshots(cfg *config.Config, store *storage.SQLiteStorage) (service.SnapshotStore, error) {
	switch cfg.SnapshotBackend {
	case config.SnapshotBackendFile:
		return classifier.NewFileSnapshotStore(cfg.SnapshotDir)
	case config.SnapshotBackendSQLite:
		return store, nil
	default:
		return nil, fmt.Errorf("%w: snapshot backend %q", common.ErrInvalidConfig, cfg.SnapshotBackend)
	}
}

// initApp wires storage, the classifier and the engine. With loadModels the
// classifier is brought up before returning; otherwise predictions fall back
// to the default category.
func initApp(ctx context.Context, loadModels bool) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	snapshots, err := initSnapshots(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svc := classifier.NewService(snapshots, store, classifier.SeedCorpus())
	if loadModels {
		if err := svc.Load(ctx); err != nil {
			// Directions that failed degrade to the default category.
			slog.Warn("Classifier only partially available", "error", err)
		}
	}

	engineCfg := engine.DefaultConfig()
	engineCfg.Retry = cfg.Retry

	return &app{
		cfg:        cfg,
		store:      store,
		classifier: svc,
		engine:     engine.NewWithConfig(store, svc, engineCfg),
	}, nil
}

// userFacing keeps the message meant for the user and logs the cause.
func userFacing(err error) error {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		slog.Debug("Request rejected", "error", err)
		return errors.New(userErr.UserMessage)
	}
	return err
}
