package main

import (
	"context"
	"fmt"

	"github.com/gsarmaonline/modelloader/config"
	"github.com/gsarmaonline/modelloader/core"
	"github.com/gsarmaonline/modelloader/database"
	"github.com/gsarmaonline/modelloader/loader"
	"github.com/gsarmaonline/modelloader/logger"
	"github.com/gsarmaonline/modelloader/orm"
	"github.com/gsarmaonline/modelloader/plans"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	app struct {
		cfg    *config.Config
		log    *zap.Logger
		db     *gorm.DB
		models core.Registry
	}

	loadFlags struct {
		builtin bool
		migrate bool
	}
)

// newApp loads config, connects to the database and loads the models
// found in dir, or the built-in plans when flags.builtin is set.
func newApp(ctx context.Context, dir string, flags loadFlags) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		cfg.Models.Dir = dir
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, db: db}
	if a.models, err = a.load(flags.builtin); err != nil {
		a.Close()
		return nil, err
	}

	if flags.migrate {
		if err = a.migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) load(builtin bool) (core.Registry, error) {
	engine := orm.NewEngine(a.db)
	opts := loader.Options{
		Schema:  a.cfg.Models.Schema,
		Logger:  a.log,
		Context: a.cfg.Models.Context,
		Suffix:  a.cfg.Models.Suffix,
	}

	if builtin {
		catalog := loader.NewCatalog("")
		if err := catalog.Install(plans.Plugin{}); err != nil {
			return nil, err
		}
		return loader.Load(catalog, engine, opts)
	}
	return loader.LoadDir(a.cfg.Models.Dir, engine, opts)
}

func (a *app) migrate(ctx context.Context) error {
	for _, name := range a.models.Names() {
		m, ok := a.models[name].(*orm.Model)
		if !ok {
			continue
		}
		if err := m.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
		a.log.Info("model migrated", zap.String("model", name), zap.String("table", m.QualifiedTableName()))
	}
	return nil
}

func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
