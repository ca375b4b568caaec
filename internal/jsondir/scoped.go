package jsondir

import (
	"errors"

	"github.com/spf13/afero"

	"github.com/what-to-code-complete/where-is/pkg/types"
)

// Use creates the database, runs fn, and deletes the database again whether
// or not fn fails. Errors from fn and Delete are joined.
func (b *Backend) Use(fn func(*Backend) error) (err error) {
	if err := b.Create(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, b.Delete())
	}()
	return fn(b)
}

// Scoped builds a backend for config on the OS filesystem and runs fn inside
// Use. It is meant for throwaway databases.
func Scoped(config types.Config, fn func(*Backend) error) error {
	return ScopedWithFs(afero.NewOsFs(), config, fn)
}

// ScopedWithFs is Scoped on an arbitrary filesystem.
func ScopedWithFs(fs afero.Fs, config types.Config, fn func(*Backend) error) error {
	b, err := NewBackendWithFs(fs, config)
	if err != nil {
		return err
	}
	return b.Use(fn)
}
