package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/what-to-code-complete/where-is/pkg/types"

	_ "modernc.org/sqlite"
)

// Summary describes a finished export.
type Summary struct {
	Path      string    `json:"path"`
	Source    string    `json:"source"`
	TakenAt   time.Time `json:"taken_at"`
	Entries   int       `json:"entries"`
	Locations int       `json:"locations"`
}

// now is replaced in tests.
var now = time.Now

// Export writes every entry of db, with its resolved locations and their
// on-disk state, into a new SQLite file at path. The database directory is
// only read. Returns ErrSnapshotExists if path is already present and
// ErrEntryExists if two documents carry the same name; on any other failure
// the partially written file is removed.
func Export(ctx context.Context, db types.Database, path string) (*Summary, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSnapshotExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking snapshot path: %w", err)
	}

	entries, err := db.Entries()
	if err != nil {
		return nil, err
	}
	if err := checkUniqueNames(entries); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}

	summary := &Summary{Path: path, Source: db.Location(), TakenAt: now().UTC()}
	err = writeSnapshot(ctx, sqlDB, entries, summary)
	if cerr := sqlDB.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing snapshot: %w", cerr)
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return summary, nil
}

// checkUniqueNames returns ErrEntryExists if two stored documents share a
// name; the snapshot keys entries by name.
func checkUniqueNames(entries []*types.Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Name()]; ok {
			return fmt.Errorf("%w: %q is stored more than once", types.ErrEntryExists, entry.Name())
		}
		seen[entry.Name()] = struct{}{}
	}
	return nil
}

func writeSnapshot(ctx context.Context, db *sql.DB, entries []*types.Entry, summary *Summary) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertSnapshot, summary.TakenAt.Format(time.RFC3339), summary.Source); err != nil {
		return fmt.Errorf("inserting snapshot row: %w", err)
	}

	for _, entry := range entries {
		n, err := insertEntryRows(ctx, tx, entry)
		if err != nil {
			return err
		}
		summary.Entries++
		summary.Locations += n
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// insertEntryRows stores one entry and its locations and returns the number
// of location rows written.
func insertEntryRows(ctx context.Context, tx *sql.Tx, entry *types.Entry) (int, error) {
	document, err := entry.ToJSON()
	if err != nil {
		return 0, fmt.Errorf("encoding entry %q: %w", entry.Name(), err)
	}
	statuses, err := entry.LocationsExists()
	if err != nil {
		return 0, fmt.Errorf("resolving entry %q: %w", entry.Name(), err)
	}

	if _, err := tx.ExecContext(ctx, insertEntry, entry.Name(), document); err != nil {
		return 0, fmt.Errorf("inserting entry %q: %w", entry.Name(), err)
	}

	raw := entry.RawLocations()
	for i, status := range statuses {
		spec, err := json.Marshal(raw[i])
		if err != nil {
			return 0, fmt.Errorf("encoding location: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertLocation,
			entry.Name(), i, string(spec), status.Path,
			boolToInt(status.Exists), boolToInt(status.IsFile), boolToInt(status.IsDir),
		); err != nil {
			return 0, fmt.Errorf("inserting location %d of %q: %w", i, entry.Name(), err)
		}
	}
	return len(statuses), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
