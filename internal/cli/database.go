package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/what-to-code-complete/where-is/internal/logging"
	"github.com/what-to-code-complete/where-is/internal/sqlite"
	"github.com/what-to-code-complete/where-is/pkg/types"
)

func (a *app) newDatabaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "database",
		Short: "Query and change the database",
		Long: `Database groups the commands that operate on the entry database
itself: showing it, adding and removing entries, creating, deleting and
exporting it.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the database location and entries",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runDatabaseInfo,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create the database directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runDatabaseCreate,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME LOCATION...",
		Short: "Add an entry to the database",
		Long: `Add stores a new entry NAME with one or more candidate locations.

Each LOCATION is a path whose components may use the placeholders
HOME, WHEREIS_CONFIG and CONFIG_FOLDER.

Example:
  where-is database add vim '{HOME}/.vimrc' /etc/vim/vimrc`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: a.runDatabaseAdd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an entry from the database",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE:  a.runDatabaseRemove,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the database directory and all entries",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runDatabaseDelete,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export FILE",
		Short: "Export the database to a new SQLite file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE:  a.runDatabaseExport,
	})

	return cmd
}

// databaseInfo is the --json shape of database info.
type databaseInfo struct {
	Location string   `json:"location"`
	Exists   bool     `json:"exists"`
	Entries  []string `json:"entries"`
}

func (a *app) runDatabaseInfo(cmd *cobra.Command, args []string) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	entries, err := db.Entries()
	if err != nil {
		return err
	}

	info := databaseInfo{Location: db.Location(), Exists: db.Exists(), Entries: make([]string, 0, len(entries))}
	for _, e := range entries {
		info.Entries = append(info.Entries, e.Name())
	}
	slices.Sort(info.Entries)

	if a.flags.jsonMode {
		return a.ui.JSON(info)
	}
	a.ui.KeyValues("Database Info", [][2]string{
		{"Location", info.Location},
		{"Exists", strconv.FormatBool(info.Exists)},
		{"Entries", strings.Join(info.Entries, ", ")},
	})
	return nil
}

func (a *app) runDatabaseCreate(cmd *cobra.Command, args []string) error {
	db, err := a.backend()
	if err != nil {
		return err
	}
	if err := db.Create(); err != nil {
		return err
	}
	a.ui.Success(fmt.Sprintf("Created database at %s.", db.Location()))
	return nil
}

func (a *app) runDatabaseAdd(cmd *cobra.Command, args []string) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}

	locations := make([][]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		parts := splitLocation(arg)
		if len(parts) == 0 {
			return usageError{fmt.Errorf("location %q has no path components", arg)}
		}
		locations = append(locations, parts)
	}

	entry := types.NewEntry(args[0], locations...)
	logging.Debug().Stringer("entry", entry).Msg("adding entry")
	if err := db.Add(entry); err != nil {
		return err
	}
	a.ui.Success(fmt.Sprintf("Added entry %s to the database.", entry.Name()))
	return nil
}

func (a *app) runDatabaseRemove(cmd *cobra.Command, args []string) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	entry, err := db.Find(args[0])
	if err != nil {
		return err
	}
	if err := db.Remove(entry); err != nil {
		return err
	}
	a.ui.Success(fmt.Sprintf("Removed entry %s from the database.", entry.Name()))
	return nil
}

func (a *app) runDatabaseDelete(cmd *cobra.Command, args []string) error {
	db, err := a.backend()
	if err != nil {
		return err
	}
	if err := db.Delete(); err != nil {
		return err
	}
	a.ui.Success("Successfully deleted database.")
	return nil
}

func (a *app) runDatabaseExport(cmd *cobra.Command, args []string) error {
	target, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	db, err := a.backend()
	if err != nil {
		return err
	}
	summary, err := sqlite.Export(cmd.Context(), db, target)
	if err != nil {
		return err
	}

	if a.flags.jsonMode {
		return a.ui.JSON(summary)
	}
	a.ui.Success(fmt.Sprintf("Exported %d entries (%d locations) to %s.", summary.Entries, summary.Locations, summary.Path))
	return nil
}

// splitLocation turns a path argument into location components. Both '/'
// and the platform separator are accepted.
func splitLocation(arg string) []string {
	return strings.FieldsFunc(arg, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
}
