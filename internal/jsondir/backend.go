// Package jsondir implements the where-is Database as a directory holding
// one JSON document per entry, named <entry name>.json.
//
// The directory is the single source of truth: nothing is cached, and every
// read rescans it. No lock is taken, so concurrent writers from several
// processes can race; the backend is meant for a single user at a time.
package jsondir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/what-to-code-complete/where-is/pkg/types"
)

// entryExt marks files that hold entry documents.
const entryExt = ".json"

// Backend implements types.Database on an afero filesystem.
type Backend struct {
	fs     afero.Fs
	config types.Config
}

var _ types.Database = (*Backend)(nil)

// NewBackend returns a backend for config.Location on the OS filesystem.
// The directory does not need to exist yet; call Create to make it.
func NewBackend(config types.Config) (*Backend, error) {
	return NewBackendWithFs(afero.NewOsFs(), config)
}

// NewBackendWithFs is NewBackend on an arbitrary filesystem.
func NewBackendWithFs(fs afero.Fs, config types.Config) (*Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.Location = filepath.Clean(config.Location)
	return &Backend{fs: fs, config: config}, nil
}

// Location returns the configured directory path.
func (b *Backend) Location() string {
	return b.config.Location
}

// Exists reports whether anything exists at the location.
func (b *Backend) Exists() bool {
	_, err := b.fs.Stat(b.config.Location)
	return err == nil
}

// Create makes the database directory and, unless the config says
// otherwise, copies the bundled example entries into it.
// Returns ErrDatabaseExists if the location is already present.
func (b *Backend) Create() error {
	if b.Exists() {
		return fmt.Errorf("%w: %s", types.ErrDatabaseExists, b.config.Location)
	}
	if err := b.fs.MkdirAll(b.config.Location, 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	if b.config.SkipSeed {
		return nil
	}
	if err := seedEntries(b.fs, b.config.Location); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	return nil
}

// Delete removes the database directory and everything in it.
// Returns ErrDatabaseNotFound if the location is absent and ErrNotADirectory
// if something other than a directory is there; that is left untouched.
func (b *Backend) Delete() error {
	if err := b.checkDir(); err != nil {
		if errors.Is(err, types.ErrDirectoryNotFound) {
			return fmt.Errorf("%w: %s", types.ErrDatabaseNotFound, b.config.Location)
		}
		return err
	}
	if err := b.fs.RemoveAll(b.config.Location); err != nil {
		return fmt.Errorf("removing database directory: %w", err)
	}
	return nil
}

// Entries parses every entry document in the directory, in directory
// listing order.
func (b *Backend) Entries() ([]*types.Entry, error) {
	records, err := b.scan()
	if err != nil {
		return nil, err
	}
	entries := make([]*types.Entry, len(records))
	for i, rec := range records {
		entries[i] = rec.entry
	}
	return entries, nil
}

// Find returns the entry called name.
func (b *Backend) Find(name string) (*types.Entry, error) {
	records, err := b.scan()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.entry.Name() == name {
			return rec.entry, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", types.ErrEntryNotFound, name)
}

// Add writes entry to <name>.json. The current documents are reread first;
// an equal entry, an entry with the same name, or an existing file at the
// target path all yield ErrEntryExists.
func (b *Backend) Add(entry *types.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil entry", types.ErrInvalidName)
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	candidate := entry.WithResolver(b.config.Resolver)
	if _, err := candidate.Locations(); err != nil {
		return err
	}

	records, err := b.scan()
	if err != nil {
		return err
	}
	target := b.documentPath(candidate.Name())
	for _, rec := range records {
		if rec.entry.Name() == candidate.Name() || rec.path == target || rec.entry.Equal(candidate) {
			return fmt.Errorf("%w: %q", types.ErrEntryExists, candidate.Name())
		}
	}

	data, err := candidate.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding entry %q: %w", candidate.Name(), err)
	}
	return writeDocument(b.fs, target, data)
}

// Remove deletes the document an entry equal to entry was read from. A
// stored entry with the same name and identical raw locations also matches,
// so documents whose locations no longer resolve can still be removed.
func (b *Backend) Remove(entry *types.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil entry", types.ErrEntryNotFound)
	}
	candidate := entry.WithResolver(b.config.Resolver)

	records, err := b.scan()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.entry.Equal(candidate) || sameDocument(rec.entry, candidate) {
			if err := b.fs.Remove(rec.path); err != nil {
				return fmt.Errorf("removing %s: %w", rec.path, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", types.ErrEntryNotFound, candidate.Name())
}

// Chain starts a sticky-error chain of Add/Remove calls on the backend.
func (b *Backend) Chain() *types.Chain {
	return types.NewChain(b)
}

func (b *Backend) String() string {
	return fmt.Sprintf("Database(location=%q)", b.config.Location)
}

// sameDocument reports whether a and b have the same name and raw locations.
func sameDocument(a, b *types.Entry) bool {
	if a.Name() != b.Name() {
		return false
	}
	return slices.EqualFunc(a.RawLocations(), b.RawLocations(), func(x, y []string) bool {
		return slices.Equal(x, y)
	})
}

func (b *Backend) documentPath(name string) string {
	return filepath.Join(b.config.Location, name+entryExt)
}

// checkDir fails unless the location is an existing directory.
func (b *Backend) checkDir() error {
	info, err := b.fs.Stat(b.config.Location)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", types.ErrDirectoryNotFound, b.config.Location)
	}
	if err != nil {
		return fmt.Errorf("checking database directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", types.ErrNotADirectory, b.config.Location)
	}
	return nil
}
