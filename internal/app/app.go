// Package app implements the application layer for the define CLI.
package app

import (
	"context"
	"encoding/json"
	"errors"

	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/define/internal/engine/define"
	"go.trai.ch/zerr"
)

// App wires the define engine to the config loader and blob cache for
// command-line inspection of persisted snapshots.
type App struct {
	loader ports.ConfigLoader
	blobs  ports.BlobCache
	log    ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, blobs ports.BlobCache, log ports.Logger) *App {
	return &App{
		loader: loader,
		blobs:  blobs,
		log:    log,
	}
}

// Engine builds a define engine for the configuration found in cwd. Hosts
// embedding the engine directly construct it with define.New instead.
func (a *App) Engine(cwd string, opts ...define.Option) (*define.Engine, error) {
	definitions, err := a.loader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return define.New(definitions, a.blobs, a.log, opts...), nil
}

// Show returns the persisted snapshot for the configuration in cwd,
// pretty-printed for inspection.
func (a *App) Show(ctx context.Context, cwd string) (string, error) {
	definitions, err := a.loader.Load(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load configuration")
	}

	blob, err := a.blobs.Get(ctx, define.SnapshotKey(definitions))
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return "", domain.ErrSnapshotNotFound
		}
		return "", err
	}

	snap, err := domain.DecodeSnapshot(blob)
	if err != nil {
		return "", err
	}
	pretty, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to format snapshot")
	}
	return string(pretty), nil
}

// Clean deletes the persisted snapshot for the configuration in cwd. The
// next build then starts with no prior knowledge and no invalidations.
func (a *App) Clean(ctx context.Context, cwd string) error {
	definitions, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if err := a.blobs.Delete(ctx, define.SnapshotKey(definitions)); err != nil {
		return zerr.Wrap(err, "failed to delete snapshot")
	}
	a.log.Info("snapshot deleted")
	return nil
}

// Components bundles the resolved application dependencies for the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}
