// Package cli implements the where-is command-line interface.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/what-to-code-complete/where-is/internal/logging"
	"github.com/what-to-code-complete/where-is/pkg/types"
	"github.com/what-to-code-complete/where-is/pkg/whereis"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	databaseLocation string
	configFile       string
	verbose          bool
	jsonMode         bool
	noColor          bool
}

// app is the state shared by one command tree. Every NewRootCmd call gets
// its own, so trees built in tests do not leak flags into each other.
type app struct {
	flags      rootFlags
	v          *viper.Viper
	configUsed string
	ui         *renderer
}

// usageError marks mistakes in how a command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra argument validator so its failures count as user
// errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// NewRootCmd creates the top-level "where-is" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:     "where-is",
		Short:   "An elegant way to find configuration files (and folders)",
		Version: whereis.Version,
		Args:    usageArgs(cobra.NoArgs),
		// Errors are printed once by Run with the right exit code.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("where-is {{.Version}}\n")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.databaseLocation, "database-location", "", "database directory (default: <config folder>/where-is)")
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default: CONFIG_FOLDER/where-is.yaml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug output")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	_ = a.v.BindPFlag(keyDatabaseLocation, pf.Lookup("database-location"))
	_ = a.v.BindPFlag(keyVerbose, pf.Lookup("verbose"))
	_ = a.v.BindPFlag(keyNoColor, pf.Lookup("no-color"))

	root.AddCommand(a.newFindCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newDatabaseCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(a.newVersionCmd())

	return root
}

// setup loads configuration and initializes logging and output before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.loadConfig(cmd.Annotations[annotationCreatesConfig] == "true"); err != nil {
		return err
	}

	noColor := a.v.GetBool(keyNoColor) || os.Getenv("NO_COLOR") != ""
	a.ui = newRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), noColor)

	logging.Init(logging.Config{
		Level:   logging.ParseLevel(a.v.GetString(keyLogLevel)),
		Verbose: a.v.GetBool(keyVerbose),
		Output:  cmd.ErrOrStderr(),
		NoColor: noColor,
	})
	if a.configUsed != "" {
		logging.Debug().Str("file", a.configUsed).Msg("loaded config")
	}
	return nil
}

// Run executes the command tree with args and returns the process exit
// code. Errors are reported on stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	newRenderer(stdout, stderr, os.Getenv("NO_COLOR") != "").Error(err.Error())
	return exitCode(err)
}

// Execute runs the root command against the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// exitCode maps an error to a process exit code: domain and usage errors
// are the user's to fix, anything else is a system error.
func exitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return exitSuccess
	case types.IsUserError(err), errors.As(err, &usage):
		return exitUserError
	default:
		return exitSysError
	}
}
