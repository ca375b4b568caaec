package types

import "path/filepath"

// Config holds the parameters a Database is constructed with. The location is
// always passed in explicitly; callers wanting the platform default obtain it
// from the paths package first.
type Config struct {
	Location string `json:"database_location" yaml:"database_location"`

	// SkipSeed creates an empty database instead of copying the bundled
	// example entries.
	SkipSeed bool `json:"skip_seed" yaml:"skip_seed"`

	// Resolver is bound to every entry the database reads. The zero value
	// follows the running platform.
	Resolver Resolver `json:"-" yaml:"-"`
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Location == "" {
		return ErrLocationEmpty
	}
	if !filepath.IsAbs(c.Location) {
		return ErrLocationRelative
	}
	return nil
}
