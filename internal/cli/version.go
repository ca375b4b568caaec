package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/what-to-code-complete/where-is/pkg/whereis"
)

const modulePath = "github.com/what-to-code-complete/where-is"

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the where-is version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return a.ui.JSON(map[string]string{"version": whereis.Version, "module": modulePath})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "where-is v%s\nmodule: %s\n", whereis.Version, modulePath)
			return nil
		},
	}
}
