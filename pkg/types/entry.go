package types

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Entry is a named set of candidate configuration locations. Entries are
// immutable once constructed; the raw location specs are stored verbatim and
// resolved on every read.
type Entry struct {
	name      string
	locations [][]string
	resolver  Resolver
}

// LocationStatus is the on-disk state of one resolved location.
type LocationStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	IsFile bool   `json:"is_file"`
	IsDir  bool   `json:"is_dir"`
}

// entryDocument is the stored JSON form of an Entry.
type entryDocument struct {
	Name      string     `json:"name"`
	Locations [][]string `json:"locations"`
}

// NewEntry returns an Entry with the given name and raw location specs.
// The specs are copied; later changes to the arguments do not affect it.
func NewEntry(name string, locations ...[]string) *Entry {
	return &Entry{name: name, locations: cloneLocations(locations)}
}

// Name returns the entry name.
func (e *Entry) Name() string {
	return e.name
}

// RawLocations returns a copy of the unresolved location specs in insertion order.
func (e *Entry) RawLocations() [][]string {
	return cloneLocations(e.locations)
}

// Resolver returns the resolver used by Locations.
func (e *Entry) Resolver() Resolver {
	return e.resolver
}

// WithResolver returns a copy of the entry that resolves placeholders with r.
func (e *Entry) WithResolver(r Resolver) *Entry {
	return &Entry{name: e.name, locations: cloneLocations(e.locations), resolver: r}
}

// Validate checks that the name is usable as a file name inside a database
// directory.
func (e *Entry) Validate() error {
	switch {
	case e.name == "", e.name == ".", e.name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, e.name)
	case strings.ContainsAny(e.name, `/\`), strings.ContainsRune(e.name, os.PathSeparator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, e.name)
	}
	return nil
}

// Locations returns the resolved absolute path of every raw location spec,
// in insertion order.
func (e *Entry) Locations() ([]string, error) {
	resolved := make([]string, 0, len(e.locations))
	for _, loc := range e.locations {
		path, err := e.resolver.Resolve(loc)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, path)
	}
	return resolved, nil
}

// LocationsExists stats every resolved location and reports what it found,
// in the same order as Locations. Nothing is cached: each call observes the
// filesystem afresh.
func (e *Entry) LocationsExists() ([]LocationStatus, error) {
	locations, err := e.Locations()
	if err != nil {
		return nil, err
	}

	statuses := make([]LocationStatus, len(locations))
	for i, path := range locations {
		statuses[i].Path = path
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		statuses[i].Exists = true
		statuses[i].IsFile = info.Mode().IsRegular()
		statuses[i].IsDir = info.IsDir()
	}
	return statuses, nil
}

// ToDict returns the stored form of the entry: its name and raw locations.
func (e *Entry) ToDict() map[string]any {
	return map[string]any{
		"name":      e.name,
		"locations": e.RawLocations(),
	}
}

// ToJSON returns the stored JSON document for the entry.
func (e *Entry) ToJSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MarshalJSON encodes the name and the raw (unresolved) locations, so the
// document stays portable across machines and users.
func (e *Entry) MarshalJSON() ([]byte, error) {
	locations := e.locations
	if locations == nil {
		locations = [][]string{}
	}
	return json.Marshal(entryDocument{Name: e.name, Locations: locations})
}

// UnmarshalJSON decodes a stored document. Both "name" and "locations" are
// required; a missing key yields an error wrapping ErrEntrySchema.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var doc struct {
		Name      *string     `json:"name"`
		Locations *[][]string `json:"locations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Name == nil {
		return fmt.Errorf("%w: %q", ErrEntrySchema, "name")
	}
	if doc.Locations == nil {
		return fmt.Errorf("%w: %q", ErrEntrySchema, "locations")
	}
	e.name = *doc.Name
	e.locations = cloneLocations(*doc.Locations)
	return nil
}

// Equal reports whether both entries have the same name and resolve to the
// same locations in the same order. Entries whose locations cannot be
// resolved are never equal to anything.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.name != other.name {
		return false
	}
	mine, err := e.Locations()
	if err != nil {
		return false
	}
	theirs, err := other.Locations()
	if err != nil {
		return false
	}
	return slices.Equal(mine, theirs)
}

// EqualAny is Equal for an arbitrary value; non-Entry values are never equal.
func (e *Entry) EqualAny(v any) bool {
	switch other := v.(type) {
	case *Entry:
		return e.Equal(other)
	case Entry:
		return e.Equal(&other)
	default:
		return false
	}
}

func (e *Entry) String() string {
	locations, err := e.Locations()
	if err != nil {
		return fmt.Sprintf("Entry(name=%q, locations=%q)", e.name, e.locations)
	}
	return fmt.Sprintf("Entry(name=%q, locations=%q)", e.name, locations)
}

func cloneLocations(locations [][]string) [][]string {
	if locations == nil {
		return nil
	}
	out := make([][]string, len(locations))
	for i, loc := range locations {
		out[i] = slices.Clone(loc)
	}
	return out
}
