// Package whereis is the public entry point to a where-is database: a
// directory of named entries, each listing the places a program's
// configuration may live.
//
// Example:
//
//	db, err := whereis.OpenDefault()
//	if err != nil {
//	    return err
//	}
//	zsh, err := db.Find("zsh")
//	if err != nil {
//	    return err
//	}
//	statuses, err := zsh.LocationsExists()
package whereis

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/what-to-code-complete/where-is/internal/jsondir"
	"github.com/what-to-code-complete/where-is/internal/paths"
	"github.com/what-to-code-complete/where-is/pkg/types"
)

// Version is the where-is release version.
const Version = "0.3.0"

// Open returns the database described by config. The directory is not
// touched; call Create if Exists reports false.
func Open(config types.Config) (types.Database, error) {
	return jsondir.NewBackend(config)
}

// OpenDefault opens the database at the platform default location.
func OpenDefault() (types.Database, error) {
	dir, err := paths.DefaultDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(types.Config{Location: dir})
}

// WithTemporary creates a seeded database in a fresh directory under the
// system temp dir, runs fn against it, and removes it afterwards even when
// fn fails.
func WithTemporary(fn func(types.Database) error) error {
	location := filepath.Join(os.TempDir(), paths.AppName+"-"+uuid.NewString())
	return jsondir.Scoped(types.Config{Location: location}, func(b *jsondir.Backend) error {
		return fn(b)
	})
}
