package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	http "github.com/riposte-dev/riposte/internal/http"
)

// Formatter renders requests, responses, and HTTP errors for the terminal.
type Formatter struct {
	Verbose bool
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a formatter. Color is disabled when requested or when
// stdout is not a terminal.
func NewFormatter(verbose, noColor bool) *Formatter {
	if !noColor && !isTerminal(os.Stdout) {
		noColor = true
	}
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatRequest formats a resolved request descriptor for display
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(req.Method),
		f.scheme.URL.Sprint(req.URL())))

	if f.Verbose || len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for key, value := range req.Headers {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), value))
		}
	}

	if len(req.Body) > 0 {
		buf.WriteString("  Form:\n")
		for key, value := range req.Body {
			buf.WriteString(fmt.Sprintf("    %s=%s\n", key, value))
		}
	}

	return buf.String()
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.statusColor(resp.StatusCode).Sprint(resp.Status),
		resp.GetResponseTimeMillis()))

	if f.Verbose {
		buf.WriteString("  Headers:\n")
		for key, values := range resp.Headers {
			for _, value := range values {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), value))
			}
		}
	}

	if body := resp.Text(); body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatHTTPError formats the structured error raised for non-2xx responses
func (f *Formatter) FormatHTTPError(err *http.HTTPError) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s %s %s returned %s\n",
		ErrorIcon(f.NoColor),
		f.scheme.Method.Sprint(err.Method),
		f.scheme.URL.Sprint(err.URL),
		f.statusColor(err.StatusCode).Sprintf("%d", err.StatusCode)))

	if err.Body != nil {
		buf.WriteString("  Body:\n")
		switch body := err.Body.(type) {
		case string:
			buf.WriteString(formatJSONString(body))
		default:
			rendered, marshalErr := json.Marshal(body)
			if marshalErr != nil {
				buf.WriteString(fmt.Sprintf("%+v", body))
			} else {
				buf.WriteString(formatJSONString(string(rendered)))
			}
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

func (f *Formatter) statusColor(statusCode int) *color.Color {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return f.scheme.StatusOK
	case statusCode >= 300 && statusCode < 400:
		return f.scheme.StatusWarn
	default:
		return f.scheme.StatusError
	}
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return "  " + s
	}
	return "  " + prettyJSON.String()
}
