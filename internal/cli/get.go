package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/internal/http"
	"github.com/riposte-dev/riposte/internal/output"
	"github.com/riposte-dev/riposte/pkg/jsonpath"
	"github.com/riposte-dev/riposte/pkg/jsonschema"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		headers, _ := cmd.Flags().GetStringArray("header")
		verbose, _ := cmd.Flags().GetBool("verbose")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")
		configPath, _ := cmd.Flags().GetString("config")
		profileName, _ := cmd.Flags().GetString("profile")
		extractPath, _ := cmd.Flags().GetString("extract")
		schemaPath, _ := cmd.Flags().GetString("schema")
		repeat, _ := cmd.Flags().GetInt("repeat")

		formatter := output.NewFormatter(verbose, noColor)

		defaults, err := profileOptions(configPath, profileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		client := http.NewClient(defaults...)
		callOpts := http.Options{Headers: parseHeaders(headers)}

		preview, err := http.NewRequest(url, http.MergeOptions(append(defaults, callOpts)...))
		if err != nil {
			exitWithError(err, formatter)
		}
		fmt.Print(formatter.FormatRequest(preview))

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if repeat > 1 {
			runRepeated(ctx, client, url, callOpts, repeat)
			return
		}

		resp, err := client.Get(ctx, url, callOpts)
		if err != nil {
			exitWithError(err, formatter)
		}

		fmt.Print(formatter.FormatResponse(resp))

		if extractPath != "" {
			value, err := jsonpath.Extract(resp.Text(), extractPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  Extract %s: %s\n", extractPath, value)
		}

		if schemaPath != "" {
			validateAgainstSchema(resp.Text(), schemaPath, noColor)
		}
	},
}

// runRepeated issues the same GET sequentially and prints a latency
// percentile summary.
func runRepeated(ctx context.Context, client *http.Client, url string, opts http.Options, repeat int) {
	hist := hdrhistogram.New(1, 60_000, 3)
	failures := 0

	for i := 0; i < repeat; i++ {
		resp, err := client.Get(ctx, url, opts)
		if err != nil {
			failures++
			continue
		}
		// Sub-millisecond responses still count as one unit.
		ms := resp.GetResponseTimeMillis()
		if ms < 1 {
			ms = 1
		}
		hist.RecordValue(ms)
	}

	fmt.Printf("Requests: %d (failed: %d)\n", repeat, failures)
	if hist.TotalCount() > 0 {
		fmt.Printf("Latency (ms): min=%d mean=%.1f p50=%d p90=%d p99=%d max=%d\n",
			hist.Min(), hist.Mean(),
			hist.ValueAtQuantile(50), hist.ValueAtQuantile(90), hist.ValueAtQuantile(99),
			hist.Max())
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// validateAgainstSchema validates a response body against a JSON Schema file.
func validateAgainstSchema(body, schemaPath string, noColor bool) {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	valid, errs := jsonschema.Validate(body, string(schemaBytes))
	if valid {
		fmt.Printf("  %s Schema validation passed\n", output.SuccessIcon(noColor))
		return
	}

	fmt.Fprintf(os.Stderr, "  %s Schema validation failed:\n", output.ErrorIcon(noColor))
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "    %v\n", err)
	}
	os.Exit(1)
}

// exitWithError prints an error (structured HTTP errors get the formatted
// rendering) and exits non-zero.
func exitWithError(err error, formatter *output.Formatter) {
	var httpErr *http.HTTPError
	if errors.As(err, &httpErr) {
		fmt.Fprint(os.Stderr, formatter.FormatHTTPError(httpErr))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func init() {
	getCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	getCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	getCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	getCmd.Flags().Bool("no-color", false, "Disable colored output")
	getCmd.Flags().StringP("config", "c", "", "Path to a YAML profile file")
	getCmd.Flags().StringP("profile", "p", "", "Profile name to apply from the config file")
	getCmd.Flags().StringP("extract", "e", "", "JSONPath expression to extract from the response body")
	getCmd.Flags().StringP("schema", "s", "", "JSON Schema file to validate the response body against")
	getCmd.Flags().IntP("repeat", "n", 1, "Repeat the request N times and print a latency summary")
}
