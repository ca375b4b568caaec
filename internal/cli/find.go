package cli

import (
	"github.com/spf13/cobra"

	"github.com/what-to-code-complete/where-is/internal/logging"
	"github.com/what-to-code-complete/where-is/pkg/types"
)

func (a *app) newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Find the config locations of the entry NAME",
		Long: `Find looks up the entry NAME and shows each of its candidate
locations together with whether something exists there.

Example:
  where-is find zsh
  where-is find grub --json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: a.runFind,
	}
}

// findOutput is the --json shape of find.
type findOutput struct {
	Name      string                 `json:"name"`
	Locations []types.LocationStatus `json:"locations"`
}

func (a *app) runFind(cmd *cobra.Command, args []string) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}

	entry, err := db.Find(args[0])
	if err != nil {
		return err
	}
	logging.Debug().Stringer("entry", entry).Msg("found entry")

	statuses, err := entry.LocationsExists()
	if err != nil {
		return err
	}

	if a.flags.jsonMode {
		return a.ui.JSON(findOutput{Name: entry.Name(), Locations: statuses})
	}
	a.ui.Locations(entry.Name(), statuses)
	return nil
}
