package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/cellconf/internal/builder"
	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/engine"
	"github.com/vk/cellconf/internal/registry"
	"github.com/vk/cellconf/internal/snapcache"
)

// manifestName is the expected file name of the workspace manifest when a
// directory is given as the workspace path.
const manifestName = "workspace.hcl"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	engine   *engine.Engine
	cache    *snapcache.Cache
}

// NewApp is the constructor for the main application. It performs the whole
// load phase: workspace manifest, cell registry, source entries, and the
// override graph. Loading errors are fatal startup errors — partial config
// is worse than no config — so they panic and are recovered by the caller.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifestPath := appConfig.WorkspacePath
	if info, err := os.Stat(manifestPath); err == nil && info.IsDir() {
		manifestPath = filepath.Join(manifestPath, manifestName)
	}

	workspace, err := loader.LoadWorkspace(ctx, manifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load workspace: %w", err))
	}
	logger.Debug("Workspace loaded.", "cells", len(workspace.Cells), "root", workspace.Root)

	reg, err := registry.FromWorkspace(workspace)
	if err != nil {
		panic(fmt.Errorf("failed to build cell registry: %w", err))
	}
	logger.Debug("Cell registry built.", "cells", len(reg.List()))

	locations := sourceLocations(ctx, workspace)
	entries, err := loader.Load(ctx, locations, config.Options{Strict: appConfig.Strict})
	if err != nil {
		// In tolerant mode entries from healthy files are returned alongside
		// the aggregated ParseErrors, but a build on partial config is still
		// refused: loading errors abort before any query begins.
		panic(fmt.Errorf("failed to load configuration sources: %w", err))
	}
	logger.Debug("Configuration sources loaded.", "entries", len(entries))

	graph, err := builder.Build(ctx, entries, reg)
	if err != nil {
		panic(fmt.Errorf("failed to build override graph: %w", err))
	}

	eng := engine.New(graph, reg)
	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		engine:   eng,
		cache:    snapcache.New(eng),
	}
}

// Registry returns the application's cell registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Engine returns the application's resolution engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Cache returns the application's snapshot cache. This is primarily for testing.
func (a *App) Cache() *snapcache.Cache {
	return a.cache
}
