package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(envutil.OS, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand(lookup envutil.LookupFunc, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lessonctl",
		Short: "lessonctl - maintenance and smoke tooling for lessonbridge",
		Long: `lessonctl talks to the lessonbridge database and API.
Database settings come from the same environment variables as the server.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newCheckInCommand(lookup))
	rootCmd.AddCommand(newConfigCommand(lookup))
	rootCmd.AddCommand(newSmokeCommand(lookup))
	return rootCmd
}
