package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ba6/gatekeeper/internal/interfaces/cli/gates"
	"github.com/ba6/gatekeeper/internal/interfaces/cli/migrate"
	"github.com/ba6/gatekeeper/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gatekeeper",
		Short:        "BA6 gate access service",
		Long:         `gatekeeper enforces pay and token gates on BA6 feeds and spaces.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		gates.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
