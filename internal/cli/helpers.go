package cli

import (
	"fmt"

	"github.com/what-to-code-complete/where-is/internal/jsondir"
	"github.com/what-to-code-complete/where-is/internal/logging"
	"github.com/what-to-code-complete/where-is/pkg/types"
)

// backend builds the backend for the resolved database directory without
// touching the filesystem.
func (a *app) backend() (*jsondir.Backend, error) {
	dir, err := a.databaseDir()
	if err != nil {
		return nil, fmt.Errorf("resolve database location: %w", err)
	}
	return jsondir.NewBackend(types.Config{
		Location: dir,
		SkipSeed: a.v.GetBool(keySkipSeed),
	})
}

// openDatabase returns the backend, creating the database on first use.
func (a *app) openDatabase() (*jsondir.Backend, error) {
	b, err := a.backend()
	if err != nil {
		return nil, err
	}
	logging.Debug().Str("location", b.Location()).Msg("opening database")

	if !b.Exists() {
		a.ui.Info("Database doesn't exist, creating...")
		if err := b.Create(); err != nil {
			return nil, fmt.Errorf("create database at %s: %w", b.Location(), err)
		}
	}
	return b, nil
}
