// Command myvocab serves the vocabulary lookup API.
//
// Subcommands:
//
//	serve           HTTP listener until SIGINT/SIGTERM
//	lambda          AWS Lambda (API Gateway proxy) adapter over the same handler
//	lookup <word>   one lookup, JSON envelope on stdout
//	version         build version
//
// Configuration comes from the environment and an optional YAML or .env
// file (CONFIG_PATH). Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "myvocab",
		Short:         "English vocabulary lookup backend",
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newLambdaCmd(),
		newLookupCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
