package types

import (
	"errors"
	"fmt"
	"strings"
)

// Entry errors.
var (
	ErrEntryExists   = errors.New("entry already exists")
	ErrEntryNotFound = errors.New("entry not found")
	ErrEntryParse    = errors.New("entry parse error")
	ErrEntrySchema   = errors.New("entry document is missing a required field")
	ErrInvalidName   = errors.New("invalid entry name")
	ErrFormatMap     = errors.New("format map error")
)

// Database errors.
var (
	ErrDatabaseExists    = errors.New("database already exists")
	ErrDatabaseNotFound  = errors.New("database not found")
	ErrDirectoryNotFound = errors.New("database directory does not exist")
	ErrNotADirectory     = errors.New("database location is not a directory")
	ErrSnapshotExists    = errors.New("snapshot file already exists")
)

// Config validation errors.
var (
	ErrLocationEmpty    = errors.New("database location must not be empty")
	ErrLocationRelative = errors.New("database location must be absolute")
)

// EntryParseError reports a stored entry document that could not be turned
// into an Entry. It matches ErrEntryParse with errors.Is and exposes the
// underlying decode error to errors.As.
type EntryParseError struct {
	Path string
	Err  error
}

func (e *EntryParseError) Error() string {
	return fmt.Sprintf("error parsing %q: %v", e.Path, e.Err)
}

func (e *EntryParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEntryParse}
	}
	return []error{ErrEntryParse, e.Err}
}

// FormatMapError reports a raw location that could not be expanded into an
// absolute path. It matches ErrFormatMap with errors.Is.
type FormatMapError struct {
	Location []string
	Segment  string
	Reason   string
}

func (e *FormatMapError) Error() string {
	return fmt.Sprintf("format map not supported for location %q (segment %q): %s",
		strings.Join(e.Location, "/"), e.Segment, e.Reason)
}

func (e *FormatMapError) Is(target error) bool {
	return target == ErrFormatMap
}

// IsUserError reports whether err belongs to the domain taxonomy above, as
// opposed to an unexpected I/O failure.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrEntryExists, ErrEntryNotFound, ErrEntryParse, ErrInvalidName, ErrFormatMap,
		ErrDatabaseExists, ErrDatabaseNotFound, ErrDirectoryNotFound, ErrNotADirectory,
		ErrSnapshotExists, ErrLocationEmpty, ErrLocationRelative,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
