// Package strandcmder
package strandcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/strandhq/strand/cmd/strand/config"
	servecmder "github.com/strandhq/strand/cmd/strand/serve"
)

const strandLongDesc string = `Strand stores submitted strings, analyzes them, and answers
structured and natural-language filter queries over the stored set.

Run the service using:
  strand serve         Run the API server
  strand config ...    Manage persistent configuration`

const strandShortDesc string = "Strand - String Analysis Service"

func NewStrandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strand",
		Short: strandShortDesc,
		Long:  strandLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .strand/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}
