// Tests for the where-is command tree, run in-process against temp
// directories.
package cli

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/what-to-code-complete/where-is/pkg/types"
	"github.com/what-to-code-complete/where-is/pkg/whereis"

	_ "modernc.org/sqlite"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// setupEnv isolates the test from the user's environment and returns the
// fake home directory and a not-yet-created database location.
func setupEnv(t *testing.T) (home, dbDir string) {
	t.Helper()

	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"DATABASE_LOCATION", "VERBOSE", "NO_COLOR", "SKIP_SEED", "LOG_LEVEL"} {
		t.Setenv("WHEREIS_"+key, "")
	}
	return home, filepath.Join(t.TempDir(), uuid.NewString())
}

func TestFind(t *testing.T) {
	home, dbDir := setupEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("# zsh"), 0o644))

	res := runCLI(t, "--database-location", dbDir, "find", "zsh")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	assert.Contains(t, res.stderr, "Database doesn't exist, creating...")
	assert.Contains(t, res.stdout, "Config files found for zsh")
	assert.Contains(t, res.stdout, "LOCATION")
	assert.Regexp(t, filepath.Join(home, ".zshrc")+`\s+true\s+true\s+false`, res.stdout)
	assert.Regexp(t, filepath.Join(home, ".zshenv")+`\s+false\s+false\s+false`, res.stdout)

	_, err := os.Stat(dbDir)
	assert.NoError(t, err, "database created on first use")
}

func TestFind_JSON(t *testing.T) {
	home, dbDir := setupEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), nil, 0o644))

	res := runCLI(t, "--database-location", dbDir, "--json", "find", "zsh")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var out findOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "zsh", out.Name)
	require.Len(t, out.Locations, 4)
	assert.Equal(t, types.LocationStatus{Path: filepath.Join(home, ".zshrc"), Exists: true, IsFile: true}, out.Locations[0])
	assert.False(t, out.Locations[1].Exists)
}

func TestFind_NotFound(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "find", "emacs")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "entry not found")
	assert.Empty(t, res.stdout)
}

func TestList(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "database", "add", "alacritty", "{HOME}/.config/alacritty/alacritty.toml")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	res = runCLI(t, "--database-location", dbDir, "--json", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var docs []struct {
		Name      string     `json:"name"`
		Locations [][]string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "alacritty", docs[0].Name)
	assert.Equal(t, [][]string{{"{HOME}", ".config", "alacritty", "alacritty.toml"}}, docs[0].Locations)
	assert.Equal(t, "grub", docs[1].Name)
	assert.Equal(t, "zsh", docs[2].Name)

	res = runCLI(t, "--database-location", dbDir, "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "NAME")
	assert.Contains(t, res.stdout, "Total: 3 entries")
}

func TestList_EmptyWithSkipSeed(t *testing.T) {
	_, dbDir := setupEnv(t)
	t.Setenv("WHEREIS_SKIP_SEED", "true")

	res := runCLI(t, "--database-location", dbDir, "--json", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.JSONEq(t, `[]`, res.stdout)

	res = runCLI(t, "--database-location", dbDir, "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "The database has no entries.")
}

func TestDatabase_AddRemove(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "database", "add", "vim", "{HOME}/.vimrc", "/etc/vim/vimrc")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Added entry vim to the database.")

	data, err := os.ReadFile(filepath.Join(dbDir, "vim.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"vim","locations":[["{HOME}",".vimrc"],["etc","vim","vimrc"]]}`, string(data))

	res = runCLI(t, "--database-location", dbDir, "database", "add", "vim", "/etc/vimrc")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "entry already exists")

	res = runCLI(t, "--database-location", dbDir, "database", "remove", "vim")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Removed entry vim from the database.")
	_, err = os.Stat(filepath.Join(dbDir, "vim.json"))
	assert.True(t, os.IsNotExist(err))

	res = runCLI(t, "--database-location", dbDir, "database", "remove", "vim")
	assert.Equal(t, exitUserError, res.code)
}

func TestDatabase_AddInvalid(t *testing.T) {
	_, dbDir := setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing location", []string{"database", "add", "vim"}},
		{"empty location", []string{"database", "add", "vim", "/"}},
		{"two placeholders", []string{"database", "add", "odd", "{HOME}{WHEREIS_CONFIG}/x"}},
		{"separator in name", []string{"database", "add", "a\\b", "/etc/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, append([]string{"--database-location", dbDir}, tt.args...)...)
			assert.Equal(t, exitUserError, res.code, res.stderr)
		})
	}
}

func TestDatabase_CreateDelete(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "database", "create")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(dbDir, "grub.json"))

	res = runCLI(t, "--database-location", dbDir, "database", "create")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "database already exists")

	res = runCLI(t, "--database-location", dbDir, "database", "delete")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Successfully deleted database.")
	assert.NoDirExists(t, dbDir)

	res = runCLI(t, "--database-location", dbDir, "database", "delete")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "database not found")
}

func TestDatabase_Info(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "--json", "database", "info")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var info databaseInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, dbDir, info.Location)
	assert.True(t, info.Exists)
	assert.Equal(t, []string{"grub", "zsh"}, info.Entries)

	res = runCLI(t, "--database-location", dbDir, "database", "info")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Database Info")
	assert.Contains(t, res.stdout, "grub, zsh")
}

func TestDatabase_Corrupt(t *testing.T) {
	_, dbDir := setupEnv(t)
	require.Equal(t, exitSuccess, runCLI(t, "--database-location", dbDir, "database", "create").code)
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "bad.json"), []byte(`{"name":"bad"}`), 0o644))

	for _, args := range [][]string{{"list"}, {"find", "zsh"}, {"database", "info"}} {
		t.Run(args[0], func(t *testing.T) {
			res := runCLI(t, append([]string{"--database-location", dbDir}, args...)...)
			assert.Equal(t, exitUserError, res.code)
			assert.Contains(t, res.stderr, "bad.json")
		})
	}
}

func TestDatabase_Export(t *testing.T) {
	_, dbDir := setupEnv(t)
	require.Equal(t, exitSuccess, runCLI(t, "--database-location", dbDir, "database", "create").code)

	target := filepath.Join(t.TempDir(), "where-is.db")
	res := runCLI(t, "--database-location", dbDir, "database", "export", target)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Exported 2 entries (7 locations)")

	db, err := sql.Open("sqlite", target)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM locations`).Scan(&count))
	assert.Equal(t, 7, count)

	res = runCLI(t, "--database-location", dbDir, "database", "export", target)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "snapshot file already exists")
}

func TestDatabase_ExportMissing(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "database", "export", filepath.Join(t.TempDir(), "x.db"))
	assert.Equal(t, exitUserError, res.code)
	assert.NoDirExists(t, dbDir, "export does not create the database")
}

func TestDatabaseLocationPrecedence(t *testing.T) {
	home, _ := setupEnv(t)
	fromFile := filepath.Join(t.TempDir(), "from-file")
	fromEnv := filepath.Join(t.TempDir(), "from-env")
	fromFlag := filepath.Join(t.TempDir(), "from-flag")

	configPath := filepath.Join(home, ".config", "where-is.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf("database_location: %s\n", fromFile)), 0o644))

	location := func(args ...string) string {
		t.Helper()
		res := runCLI(t, append(args, "--json", "config", "show")...)
		require.Equal(t, exitSuccess, res.code, res.stderr)
		var out struct {
			ConfigFile string     `json:"config_file"`
			Settings   configFile `json:"settings"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
		assert.Equal(t, configPath, out.ConfigFile)
		return out.Settings.DatabaseLocation
	}

	assert.Equal(t, fromFile, location())

	t.Setenv("WHEREIS_DATABASE_LOCATION", fromEnv)
	assert.Equal(t, fromEnv, location())

	assert.Equal(t, fromFlag, location("--database-location", fromFlag))
}

func TestDefaultDatabaseLocation(t *testing.T) {
	home, _ := setupEnv(t)

	res := runCLI(t, "--json", "database", "info")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var info databaseInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, filepath.Join(home, ".config", "where-is"), info.Location)
}

func TestConfigInit(t *testing.T) {
	home, dbDir := setupEnv(t)
	configPath := filepath.Join(home, ".config", "where-is.yaml")

	res := runCLI(t, "--database-location", dbDir, "config", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Wrote config file "+configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "database_location: "+dbDir)
	assert.Contains(t, string(data), "log_level: warn")

	res = runCLI(t, "config", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "already exists")

	res = runCLI(t, "config", "show")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# "+configPath)
	assert.Contains(t, res.stdout, "database_location: "+dbDir)

	other := filepath.Join(t.TempDir(), "other")
	res = runCLI(t, "--database-location", other, "config", "init", "--force")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "database_location: "+other)
}

func TestConfigInit_NewExplicitFile(t *testing.T) {
	_, dbDir := setupEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "new.yaml")

	res := runCLI(t, "--config", path, "--database-location", dbDir, "config", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Wrote config file "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "database_location: "+dbDir)

	res = runCLI(t, "--config", path, "config", "show")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# "+path)
	assert.Contains(t, res.stdout, "database_location: "+dbDir)

	res = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "show")
	assert.Equal(t, exitUserError, res.code)
}

func TestConfigFlag(t *testing.T) {
	_, dbDir := setupEnv(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("database_location: %s\nskip_seed: true\n", dbDir)), 0o644))

	res := runCLI(t, "--config", path, "--json", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.JSONEq(t, `[]`, res.stdout)
	assert.DirExists(t, dbDir)

	res = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	assert.Equal(t, exitUserError, res.code)
}

func TestVerbose(t *testing.T) {
	_, dbDir := setupEnv(t)

	res := runCLI(t, "--database-location", dbDir, "-v", "find", "grub")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "opening database")

	res = runCLI(t, "--database-location", dbDir, "find", "grub")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.NotContains(t, res.stderr, "opening database")
}

func TestVersion(t *testing.T) {
	setupEnv(t)

	res := runCLI(t, "version")
	require.Equal(t, exitSuccess, res.code)
	assert.Equal(t, fmt.Sprintf("where-is v%s\nmodule: %s\n", whereis.Version, modulePath), res.stdout)

	res = runCLI(t, "--version")
	require.Equal(t, exitSuccess, res.code)
	assert.Equal(t, "where-is "+whereis.Version+"\n", res.stdout)

	res = runCLI(t, "--json", "version")
	require.Equal(t, exitSuccess, res.code)
	assert.JSONEq(t, fmt.Sprintf(`{"version":%q,"module":%q}`, whereis.Version, modulePath), res.stdout)
}

func TestUsageErrors(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate"}},
		{"unknown flag", []string{"--frobnicate"}},
		{"find without name", []string{"find"}},
		{"find with two names", []string{"find", "a", "b"}},
		{"remove without name", []string{"database", "remove"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			assert.Equal(t, exitUserError, res.code)
			assert.NotEmpty(t, res.stderr)
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"domain", fmt.Errorf("find: %w", types.ErrEntryNotFound), exitUserError},
		{"usage", usageError{errors.New("bad args")}, exitUserError},
		{"system", fmt.Errorf("write: %w", os.ErrPermission), exitSysError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestSplitLocation(t *testing.T) {
	assert.Equal(t, []string{"{HOME}", ".config", "fish"}, splitLocation("{HOME}/.config/fish"))
	assert.Equal(t, []string{"etc", "zsh", "zshrc"}, splitLocation("/etc//zsh/zshrc/"))
	assert.Empty(t, splitLocation("/"))
}
