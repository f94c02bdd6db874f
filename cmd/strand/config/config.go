// Package configcmder provides the config command for managing persistent
// strand configuration stored in the .strand/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent strand configuration.

Configuration is stored as config.toml in the .strand/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  api.listen,
  storage.driver, storage.sqlite_path, storage.postgres_dsn

Use subcommands to get, set, or list configuration values:
  strand config set <key> <value>    Set a configuration value
  strand config get <key>            Get a configuration value
  strand config list                 List all configuration values

Examples:
  strand config set storage.driver sqlite
  strand config set storage.sqlite_path ~/.strand/strand.db
  strand config get api.listen
  strand config list`

const configShortDesc string = "Manage persistent strand configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
