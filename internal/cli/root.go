package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "riposte",
	Short:   "A minimal terminal HTTP client",
	Version: version,
	Long: `Riposte is a minimal terminal HTTP client. Every invocation is one
independent request/response exchange: options are merged, the URL is
resolved, the request is dispatched, and the response body is decoded
(JSON-aware) with non-2xx status codes reported as structured errors.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(streamCmd)
}
