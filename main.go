package main

import (
	"fmt"
	"os"

	"github.com/mquezada/katutubo/cmd"
	"github.com/mquezada/katutubo/internal/conf"
	"github.com/mquezada/katutubo/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(settings.Debug)
	defer logging.Shutdown()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
