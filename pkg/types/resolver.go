package types

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/what-to-code-complete/where-is/internal/paths"
)

// Placeholder names recognised inside raw location segments. A segment
// matches when it contains the name, so "{HOME}" and "HOME" are equivalent.
const (
	PlaceholderHome          = "HOME"
	PlaceholderWhereisConfig = "WHEREIS_CONFIG"
	PlaceholderConfigFolder  = "CONFIG_FOLDER"
)

// placeholders is the fixed lookup order.
var placeholders = []string{
	PlaceholderHome,
	PlaceholderWhereisConfig,
	PlaceholderConfigFolder,
}

// Resolver expands placeholders in raw location specs into absolute paths.
//
// Home is substituted for HOME, WhereisConfig for WHEREIS_CONFIG, and the
// parent of WhereisConfig for CONFIG_FOLDER. Empty fields are looked up from
// the current user's environment at resolve time, so the zero Resolver
// follows the running platform.
type Resolver struct {
	Home          string
	WhereisConfig string
}

// DefaultResolver returns a Resolver with both fields filled from the
// current user's environment.
func DefaultResolver() (Resolver, error) {
	home, err := paths.HomeDir()
	if err != nil {
		return Resolver{}, fmt.Errorf("home directory: %w", err)
	}
	dir, err := paths.DefaultDatabaseDir()
	if err != nil {
		return Resolver{}, fmt.Errorf("default database directory: %w", err)
	}
	return Resolver{Home: home, WhereisConfig: dir}, nil
}

// value returns the expansion of the named placeholder.
func (r Resolver) value(name string) (string, error) {
	switch name {
	case PlaceholderHome:
		if r.Home != "" {
			return r.Home, nil
		}
		return paths.HomeDir()
	case PlaceholderWhereisConfig:
		if r.WhereisConfig != "" {
			return r.WhereisConfig, nil
		}
		return paths.DefaultDatabaseDir()
	case PlaceholderConfigFolder:
		dir, err := r.value(PlaceholderWhereisConfig)
		if err != nil {
			return "", err
		}
		return filepath.Dir(dir), nil
	}
	return "", fmt.Errorf("unknown placeholder %q", name)
}

// Resolve turns one raw location spec into an absolute path.
//
// Each segment is split on path separators. A component containing a
// placeholder name is replaced by the components of that placeholder's value,
// in place; every other component passes through literally. The result is
// rooted at the filesystem root (or at the placeholder's volume when the
// first component is a placeholder carrying one). "." components are dropped
// and ".." is kept verbatim: no further normalization happens.
//
// A component containing more than one placeholder, or a placeholder whose
// value cannot be determined, yields a *FormatMapError.
func (r Resolver) Resolve(location []string) (string, error) {
	root := string(filepath.Separator)
	var parts []string
	for _, raw := range location {
		for _, segment := range splitComponents(raw) {
			name, err := placeholderIn(segment)
			if err != nil {
				return "", &FormatMapError{Location: location, Segment: segment, Reason: err.Error()}
			}
			if name == "" {
				parts = append(parts, segment)
				continue
			}

			value, err := r.value(name)
			if err != nil || value == "" {
				reason := fmt.Sprintf("no value for %s", name)
				if err != nil {
					reason = fmt.Sprintf("%s: %v", reason, err)
				}
				return "", &FormatMapError{Location: location, Segment: segment, Reason: reason}
			}

			volume := filepath.VolumeName(value)
			if len(parts) == 0 && volume != "" {
				root = volume + string(filepath.Separator)
			}
			parts = append(parts, splitComponents(value[len(volume):])...)
		}
	}
	return root + strings.Join(parts, string(filepath.Separator)), nil
}

// placeholderIn returns the placeholder contained in segment, or "" if none.
func placeholderIn(segment string) (string, error) {
	var found []string
	for _, name := range placeholders {
		if strings.Contains(segment, name) {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("segment contains several placeholders: %s", strings.Join(found, ", "))
	}
}

// splitComponents splits s on any path separator and drops empty and "."
// components.
func splitComponents(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || (r < 0x80 && os.IsPathSeparator(uint8(r)))
	})
	out := fields[:0]
	for _, f := range fields {
		if f != "." {
			out = append(out, f)
		}
	}
	return out
}
