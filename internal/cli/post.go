package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/internal/http"
	"github.com/riposte-dev/riposte/internal/output"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a form-encoded POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		headers, _ := cmd.Flags().GetStringArray("header")
		form, _ := cmd.Flags().GetStringArray("form")
		verbose, _ := cmd.Flags().GetBool("verbose")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")
		configPath, _ := cmd.Flags().GetString("config")
		profileName, _ := cmd.Flags().GetString("profile")

		formatter := output.NewFormatter(verbose, noColor)

		defaults, err := profileOptions(configPath, profileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		client := http.NewClient(defaults...)
		callOpts := http.Options{
			Headers: parseHeaders(headers),
			Body:    parseForm(form),
		}

		previewLayers := append(append([]http.Options{{Method: "POST"}}, defaults...), callOpts)
		preview, err := http.NewRequest(url, http.MergeOptions(previewLayers...))
		if err != nil {
			exitWithError(err, formatter)
		}
		fmt.Print(formatter.FormatRequest(preview))

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Post(ctx, url, callOpts)
		if err != nil {
			exitWithError(err, formatter)
		}

		fmt.Print(formatter.FormatResponse(resp))
	},
}

func init() {
	postCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	postCmd.Flags().StringArrayP("form", "F", []string{}, "Form fields as key=value (can be used multiple times)")
	postCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	postCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	postCmd.Flags().Bool("no-color", false, "Disable colored output")
	postCmd.Flags().StringP("config", "c", "", "Path to a YAML profile file")
	postCmd.Flags().StringP("profile", "p", "", "Profile name to apply from the config file")
}
