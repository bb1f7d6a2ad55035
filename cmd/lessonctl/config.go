package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
)

func newConfigCommand(lookup envutil.LookupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the client configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(config.LoadClientConfig(lookup, nil))
		},
	}
}
