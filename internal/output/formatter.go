// Package output renders requests, results and errors for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"

	"github.com/timo-cingoez/cURLy/internal/curly"
)

// Formatter renders the request/response exchange in text form.
type Formatter struct {
	Verbose bool
	NoColor bool
}

// NewFormatter creates a formatter. Color is dropped automatically when
// stdout is not a terminal, regardless of noColor.
func NewFormatter(verbose, noColor bool) *Formatter {
	if !noColor {
		fd := os.Stdout.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			noColor = true
		}
	}
	return &Formatter{Verbose: verbose, NoColor: noColor}
}

// FormatRequest formats the outgoing request line, headers and body.
func (f *Formatter) FormatRequest(method, url string, headers []string, body string) string {
	var buf strings.Builder

	methodColor := color.New(color.FgBlue, color.Bold)
	if f.NoColor {
		methodColor.DisableColor()
	}

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n", methodColor.Sprint(method), url))

	if f.Verbose && len(headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, line := range headers {
			buf.WriteString("    " + line + "\n")
		}
	}

	if body != "" {
		buf.WriteString("  Body: " + indentJSON(body) + "\n")
	}

	return buf.String()
}

// FormatResult formats a decoded response value.
func (f *Formatter) FormatResult(value any, elapsed time.Duration) string {
	var buf strings.Builder

	okColor := color.New(color.FgGreen, color.Bold)
	if f.NoColor {
		okColor.DisableColor()
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n", okColor.Sprint("OK"), elapsed.Milliseconds()))
	buf.WriteString("  Body:\n")
	buf.WriteString(renderValue(value))
	buf.WriteString("\n")

	return buf.String()
}

// FormatError formats a failed exchange, keeping the detail that each error
// class carries.
func (f *Formatter) FormatError(err error) string {
	errColor := color.New(color.FgRed, color.Bold)
	if f.NoColor {
		errColor.DisableColor()
	}

	var statusErr *curly.StatusError
	if errors.As(err, &statusErr) {
		var buf strings.Builder
		buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s\n", errColor.Sprintf("HTTP %d", statusErr.Code)))
		if statusErr.Body != "" {
			buf.WriteString("  Body:\n" + indentJSON(statusErr.Body) + "\n")
		}
		return buf.String()
	}

	return fmt.Sprintf("%s %v\n", errColor.Sprint("✖"), err)
}

// renderValue pretty-prints a decoded result in either response mode.
func renderValue(value any) string {
	if result, ok := value.(gjson.Result); ok {
		return indentJSON(result.Raw)
	}

	encoded, err := json.MarshalIndent(value, "  ", "  ")
	if err != nil {
		return fmt.Sprintf("  %v", value)
	}
	return "  " + string(encoded)
}

// indentJSON pretty-prints s when it is valid JSON, and returns it verbatim
// otherwise.
func indentJSON(s string) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(s), "  ", "  "); err != nil {
		return s
	}
	return pretty.String()
}
