// Package sqlite exports a snapshot of a where-is database into a SQLite
// file, one row per entry and one row per candidate location, so the
// registry can be inspected with ordinary SQL tooling.
package sqlite

// Schema DDL for the snapshot tables.
const (
	createSnapshot = `CREATE TABLE snapshot (
    taken_at TEXT NOT NULL,
    source TEXT NOT NULL
);`

	createEntries = `CREATE TABLE entries (
    name TEXT PRIMARY KEY,
    document TEXT NOT NULL
);`

	createLocations = `CREATE TABLE locations (
    entry_name TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    raw TEXT NOT NULL,
    resolved TEXT NOT NULL,
    exists_on_disk INTEGER NOT NULL,
    is_file INTEGER NOT NULL,
    is_dir INTEGER NOT NULL,
    PRIMARY KEY (entry_name, ordinal),
    FOREIGN KEY (entry_name) REFERENCES entries(name) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxLocationsResolved = `CREATE INDEX idx_locations_resolved ON locations(resolved);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSnapshot,
	createEntries,
	createLocations,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLocationsResolved,
}

const (
	insertSnapshot = `INSERT INTO snapshot (taken_at, source) VALUES (?, ?)`
	insertEntry    = `INSERT INTO entries (name, document) VALUES (?, ?)`
	insertLocation = `INSERT INTO locations
    (entry_name, ordinal, raw, resolved, exists_on_disk, is_file, is_dir)
    VALUES (?, ?, ?, ?, ?, ?, ?)`
)
