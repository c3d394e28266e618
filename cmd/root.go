package cmd

import (
	"github.com/spf13/cobra"

	importcmd "github.com/mquezada/katutubo/cmd/importer"
	"github.com/mquezada/katutubo/cmd/serve"
	"github.com/mquezada/katutubo/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "katutubo",
		Short: "Katutubo IP registry service",
		Long:  "Registry service for indigenous-person demographic records of Catanauan, Quezon.",
	}

	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")

	subcommands := []*cobra.Command{
		serve.Command(settings),
		importcmd.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}
