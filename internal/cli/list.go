package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/what-to-code-complete/where-is/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries in the database",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runList,
	}
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	entries, err := db.Entries()
	if err != nil {
		return err
	}
	slices.SortFunc(entries, func(x, y *types.Entry) int {
		return strings.Compare(x.Name(), y.Name())
	})

	if a.flags.jsonMode {
		if entries == nil {
			entries = []*types.Entry{}
		}
		return a.ui.JSON(entries)
	}

	if len(entries) == 0 {
		a.ui.Info("The database has no entries.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		statuses, err := e.LocationsExists()
		if err != nil {
			return err
		}
		found := 0
		for _, s := range statuses {
			if s.Exists {
				found++
			}
		}
		rows = append(rows, []string{e.Name(), strconv.Itoa(len(statuses)), strconv.Itoa(found)})
	}
	a.ui.table("", []string{"NAME", "LOCATIONS", "FOUND"}, rows, nil)
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %d entr%s\n", len(entries), plural(len(entries), "y", "ies"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
