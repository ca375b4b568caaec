package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/what-to-code-complete/where-is/internal/logging"
	"github.com/what-to-code-complete/where-is/internal/paths"
)

// Config keys. Each can also be set through WHEREIS_<KEY>.
const (
	keyDatabaseLocation = "database_location"
	keyVerbose          = "verbose"
	keyNoColor          = "no_color"
	keySkipSeed         = "skip_seed"
	keyLogLevel         = "log_level"

	envPrefix = "WHEREIS"

	// annotationCreatesConfig marks commands that may run before their
	// --config file exists.
	annotationCreatesConfig = "creates-config"
)

// configFile is the YAML layout of where-is.yaml.
type configFile struct {
	DatabaseLocation string `yaml:"database_location,omitempty" json:"database_location,omitempty"`
	Verbose          bool   `yaml:"verbose" json:"verbose"`
	NoColor          bool   `yaml:"no_color" json:"no_color"`
	SkipSeed         bool   `yaml:"skip_seed" json:"skip_seed"`
	LogLevel         string `yaml:"log_level" json:"log_level"`
}

// loadConfig reads where-is.yaml into a.v. An explicit --config file must
// exist unless creating is set, as for config init; the default one is
// optional.
func (a *app) loadConfig(creating bool) error {
	v := a.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(keyLogLevel, "warn")

	if a.flags.configFile != "" {
		v.SetConfigFile(a.flags.configFile)
		if err := v.ReadInConfig(); err != nil {
			if creating && errors.Is(err, fs.ErrNotExist) {
				logging.Debug().Str("file", a.flags.configFile).Msg("config file not found, will be created")
				return nil
			}
			return usageError{fmt.Errorf("read config %s: %w", a.flags.configFile, err)}
		}
		a.configUsed = v.ConfigFileUsed()
		return nil
	}

	folder, err := paths.ConfigFolder()
	if err != nil {
		logging.Debug().Err(err).Msg("no config folder, skipping config file")
		return nil
	}
	v.SetConfigName(strings.TrimSuffix(paths.ConfigFileName, filepath.Ext(paths.ConfigFileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(folder)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	a.configUsed = v.ConfigFileUsed()
	return nil
}

// effectiveConfig returns the configuration in force after flags, env and
// the config file are merged.
func (a *app) effectiveConfig() (configFile, error) {
	location, err := a.databaseDir()
	if err != nil {
		return configFile{}, err
	}
	return configFile{
		DatabaseLocation: location,
		Verbose:          a.v.GetBool(keyVerbose),
		NoColor:          a.v.GetBool(keyNoColor),
		SkipSeed:         a.v.GetBool(keySkipSeed),
		LogLevel:         a.v.GetString(keyLogLevel),
	}, nil
}

// databaseDir resolves the database directory: --database-location, then
// WHEREIS_DATABASE_LOCATION, then the config file, then the platform default.
func (a *app) databaseDir() (string, error) {
	return paths.ResolveDatabaseDir(a.flags.databaseLocation, a.v.GetString(keyDatabaseLocation))
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the where-is configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runConfigShow,
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Init writes where-is.yaml with the current effective settings.

The file goes to --config if given, otherwise to CONFIG_FOLDER/where-is.yaml.
An existing file is left alone unless --force is passed.`,
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{annotationCreatesConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(cmd, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := a.effectiveConfig()
	if err != nil {
		return err
	}
	if a.flags.jsonMode {
		return a.ui.JSON(map[string]any{
			"config_file": a.configUsed,
			"settings":    cfg,
		})
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if a.configUsed != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", a.configUsed)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) runConfigInit(cmd *cobra.Command, force bool) error {
	path := a.flags.configFile
	if path == "" {
		var err error
		if path, err = paths.DefaultConfigFile(); err != nil {
			return fmt.Errorf("locate config file: %w", err)
		}
	}

	cfg, err := a.effectiveConfig()
	if err != nil {
		return err
	}

	written, err := writeConfigIfMissing(path, cfg, force)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if !written {
		a.ui.Warn(fmt.Sprintf("Config file %s already exists, pass --force to overwrite it.", path))
		return nil
	}
	a.ui.Success(fmt.Sprintf("Wrote config file %s.", path))
	return nil
}

// writeConfigIfMissing writes cfg to path as YAML. An existing file is kept
// unless force is set. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
