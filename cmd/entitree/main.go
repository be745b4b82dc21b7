// Command entitree prints entity hierarchies from scene files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/entitree/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	cancel()

	code := cli.ExitCode(err)
	if code != cli.ExitOK && code != cli.ExitInterrupted {
		fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
	}
	os.Exit(code)
}

// run builds the command tree. --verbose is read in the persistent pre-run,
// so the log level is settled before any subcommand loads a scene.
func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline and cache events")

	attach := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return attach(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
