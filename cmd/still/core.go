package main

import (
	"context"

	"github.com/stillapp/still/internal/config"
	"github.com/stillapp/still/internal/paths"
	"github.com/stillapp/still/store"
)

// openGateway loads config and opens the persistence gateway. The
// returned gateway is always usable; degradation shows up in its status.
func openGateway(ctx context.Context) (*store.Gateway, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	stateDir, err := paths.DefaultStateDir()
	if err != nil {
		return nil, nil, err
	}

	opts := store.Options{
		Sandboxed:   config.Sandboxed(),
		SyncEnabled: cfg.Sync.Enabled,
		SyncDir:     cfg.Sync.Dir,
		LocalDir:    stateDir,
	}
	if cfg.Sync.Enabled {
		opts.Prober = &store.HTTPProber{URL: cfg.Sync.StatusURL}
	}

	return store.Open(ctx, opts), cfg, nil
}
