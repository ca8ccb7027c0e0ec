package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/store"
)

// openStore opens and migrates the configured SQLite store. It returns nil
// when store.path is empty, which disables run history and the page cache.
func openStore(ctx context.Context, sc config.StoreConfig) (store.Store, error) {
	if sc.Path == "" {
		return nil, nil
	}
	st, err := store.NewSQLite(sc.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// requireStore is openStore for commands that cannot run without one.
func requireStore(ctx context.Context) (store.Store, error) {
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, eris.New("store.path is not configured (set FOUNDERS_STORE_PATH or store.path in config.yaml)")
	}
	return st, nil
}
