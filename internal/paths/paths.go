// Package paths resolves the where-is database and configuration locations.
package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform configuration folder.
const AppName = "where-is"

// ConfigFileName is the optional CLI configuration file kept next to the
// database directory (inside the configuration folder, not inside the database).
const ConfigFileName = AppName + ".yaml"

// EnvDatabaseLocation overrides the database directory.
const EnvDatabaseLocation = "WHEREIS_DATABASE_LOCATION"

// ErrNoAppData is returned on Windows when APPDATA is not set.
var ErrNoAppData = errors.New("APPDATA is not set")

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos    func() string
	homeDir func() (string, error)
	getenv  func(string) string
}{
	goos:    func() string { return runtime.GOOS },
	homeDir: os.UserHomeDir,
	getenv:  os.Getenv,
}

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	return platformDir.homeDir()
}

// DefaultDatabaseDir returns the platform-specific default database directory.
//
// Linux:   ~/.config/where-is
// macOS:   ~/Library/Preferences/where-is
// Windows: %APPDATA%/where-is
//
// Any other platform uses the Linux layout.
func DefaultDatabaseDir() (string, error) {
	return defaultDatabaseDirFor(platformDir.goos())
}

func defaultDatabaseDirFor(goos string) (string, error) {
	switch goos {
	case "windows":
		appData := platformDir.getenv("APPDATA")
		if appData == "" {
			return "", ErrNoAppData
		}
		return filepath.Join(appData, AppName), nil
	case "darwin":
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Preferences", AppName), nil
	default:
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	}
}

// ConfigFolder returns the parent of DefaultDatabaseDir: the folder the
// platform keeps per-application configuration in.
func ConfigFolder() (string, error) {
	dir, err := DefaultDatabaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Dir(dir), nil
}

// DefaultConfigFile returns the path of the optional CLI configuration file.
func DefaultConfigFile() (string, error) {
	folder, err := ConfigFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, ConfigFileName), nil
}

// ResolveDatabaseDir returns the database directory following the precedence
// chain: flag > WHEREIS_DATABASE_LOCATION env > fileValue > DefaultDatabaseDir().
// fileValue is the database_location read from the config file. Relative
// overrides are made absolute against the working directory.
func ResolveDatabaseDir(flag, fileValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := platformDir.getenv(EnvDatabaseLocation); env != "" {
		return filepath.Abs(env)
	}
	if fileValue != "" {
		return filepath.Abs(fileValue)
	}
	return DefaultDatabaseDir()
}
