// Package serve implements the serve subcommand.
package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mquezada/katutubo/internal/conf"
	"github.com/mquezada/katutubo/internal/httpserver"
)

// Command creates the serve subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the registry HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return httpserver.Run(settings)
		},
	}

	cmd.Flags().StringVar(&settings.WebServer.Host, "host", viper.GetString("webserver.host"), "Listen address")
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Listen port")

	return cmd
}
