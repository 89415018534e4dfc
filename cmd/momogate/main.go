package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/momogate/internal/interfaces/cli/gateway"
	"github.com/orris-inc/momogate/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "momogate",
		Short:        "Momogate - mobile money gateway client",
		Long:         `Momogate talks to the pawaPay mobile money API over its v1 and v2 wire formats and receives its transaction callbacks.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		gateway.NewCommand(),
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
