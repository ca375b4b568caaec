package jsondir

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/what-to-code-complete/where-is/pkg/types"
)

// record is one parsed document together with the file it came from.
type record struct {
	path  string
	entry *types.Entry
}

// scan reads and parses every entry document. The first malformed document
// aborts the scan with an *EntryParseError naming the file.
func (b *Backend) scan() ([]record, error) {
	if err := b.checkDir(); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(b.fs, b.config.Location)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", b.config.Location, err)
	}

	var records []record
	for _, info := range infos {
		if info.IsDir() || !strings.EqualFold(filepath.Ext(info.Name()), entryExt) {
			continue
		}
		path := filepath.Join(b.config.Location, info.Name())
		entry, err := readDocument(b.fs, path)
		if err != nil {
			return nil, err
		}
		records = append(records, record{path: path, entry: entry.WithResolver(b.config.Resolver)})
	}
	return records, nil
}

// readDocument parses one entry document.
func readDocument(fs afero.Fs, path string) (*types.Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var entry types.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, &types.EntryParseError{Path: path, Err: err}
	}
	return &entry, nil
}

// writeDocument atomically writes data to path using the temp-file, fsync,
// rename pattern.
func writeDocument(fs afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), ".entry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("writing entry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
