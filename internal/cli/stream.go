package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/internal/http"
	"github.com/riposte-dev/riposte/internal/output"
)

var streamCmd = &cobra.Command{
	Use:   "stream URL",
	Short: "Make a GET request in raw mode and copy the body to stdout",
	Long: `Stream issues a GET request without buffering or decoding the
response body; the bytes are copied to stdout exactly as the transport
emits them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		headers, _ := cmd.Flags().GetStringArray("header")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")
		configPath, _ := cmd.Flags().GetString("config")
		profileName, _ := cmd.Flags().GetString("profile")

		formatter := output.NewFormatter(false, noColor)

		defaults, err := profileOptions(configPath, profileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		client := http.NewClient(defaults...)
		callOpts := http.Options{Headers: parseHeaders(headers)}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Stream(ctx, url, callOpts)
		if err != nil {
			exitWithError(err, formatter)
		}
		defer resp.Stream.Close()

		if _, err := io.Copy(os.Stdout, resp.Stream); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	streamCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	streamCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	streamCmd.Flags().Bool("no-color", false, "Disable colored output")
	streamCmd.Flags().StringP("config", "c", "", "Path to a YAML profile file")
	streamCmd.Flags().StringP("profile", "p", "", "Profile name to apply from the config file")
}
