package jsondir

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

//go:embed seed/*.json
var seedFS embed.FS

// seedEntries copies the bundled example documents into dir. Existing files
// are left alone.
func seedEntries(fsys afero.Fs, dir string) error {
	names, err := fs.Glob(seedFS, "seed/*"+entryExt)
	if err != nil {
		return err
	}
	for _, name := range names {
		target := filepath.Join(dir, path.Base(name))
		ok, err := afero.Exists(fsys, target)
		if err != nil {
			return fmt.Errorf("checking %s: %w", target, err)
		}
		if ok {
			continue
		}
		data, err := seedFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if err := writeDocument(fsys, target, data); err != nil {
			return err
		}
	}
	return nil
}
