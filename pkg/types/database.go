package types

// Database is a directory holding one JSON document per Entry.
//
// The directory moves between two states: absent and present. Create moves
// it from absent to present and Delete back again; Entries, Find, Add and
// Remove require it to be present and fail with ErrDirectoryNotFound
// otherwise. Implementations keep no cache, so every read reflects the
// directory as it is at call time.
type Database interface {
	// Location returns the configured directory path.
	Location() string

	// Exists reports whether anything exists at Location.
	Exists() bool

	// Create makes the directory and seeds it. Returns ErrDatabaseExists if
	// the location is already present.
	Create() error

	// Delete removes the directory and every document in it. Returns
	// ErrDatabaseNotFound if the location is absent.
	Delete() error

	// Entries parses every stored document. A single malformed document
	// aborts the read with an *EntryParseError.
	Entries() ([]*Entry, error)

	// Find returns the entry with the given name, or ErrEntryNotFound.
	Find(name string) (*Entry, error)

	// Add stores entry as <name>.json. Returns ErrEntryExists if an equal
	// entry, or any entry with the same name, is already stored.
	Add(entry *Entry) error

	// Remove deletes the stored document of an entry equal to entry.
	// Returns ErrEntryNotFound if there is none.
	Remove(entry *Entry) error
}
