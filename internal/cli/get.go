package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/timo-cingoez/cURLy/pkg/jsonpath"
	"github.com/timo-cingoez/cURLy/pkg/jsonschema"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		targetURL := args[0]
		formatter := formatterFromFlags(cmd)

		client, err := clientFromFlags(cmd, targetURL)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		repeat, _ := cmd.Flags().GetInt("repeat")
		if repeat < 1 {
			repeat = 1
		}

		headers, _ := cmd.Flags().GetStringArray("header")
		fmt.Print(formatter.FormatRequest("GET", targetURL, headers, ""))

		// Latencies in microseconds, up to a minute, 3 significant figures.
		hist := hdrhistogram.New(1, 60_000_000, 3)

		var value any
		var elapsed time.Duration
		for i := 0; i < repeat; i++ {
			start := time.Now()
			value, err = client.Get(context.Background(), targetURL)
			elapsed = time.Since(start)
			if err != nil {
				fmt.Fprint(os.Stderr, formatter.FormatError(err))
				os.Exit(1)
			}
			hist.RecordValue(elapsed.Microseconds())
		}

		fmt.Print(formatter.FormatResult(value, elapsed))

		if schemaPath, _ := cmd.Flags().GetString("schema"); schemaPath != "" {
			if err := validateAgainstSchema(value, schemaPath); err != nil {
				fmt.Fprint(os.Stderr, formatter.FormatError(err))
				os.Exit(1)
			}
			fmt.Println("✓ schema valid")
		}

		if path, _ := cmd.Flags().GetString("extract"); path != "" {
			extracted, err := extractFromValue(value, path)
			if err != nil {
				fmt.Fprint(os.Stderr, formatter.FormatError(err))
				os.Exit(1)
			}
			fmt.Println(extracted)
		}

		if repeat > 1 {
			printLatencySummary(hist, repeat)
		}
	},
}

// validateAgainstSchema checks a decoded response against a schema file.
func validateAgainstSchema(value any, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if result, ok := value.(gjson.Result); ok {
		return jsonschema.Validate(result.Raw, string(schema))
	}
	return jsonschema.ValidateValue(value, string(schema))
}

// extractFromValue pulls a single field out of a decoded response.
func extractFromValue(value any, path string) (string, error) {
	if result, ok := value.(gjson.Result); ok {
		return jsonpath.Extract(result.Raw, path)
	}
	return jsonpath.ExtractValue(value, path)
}

func printLatencySummary(hist *hdrhistogram.Histogram, requests int) {
	fmt.Printf("\nLatency over %d requests:\n", requests)
	fmt.Printf("  p50: %s\n", time.Duration(hist.ValueAtQuantile(50))*time.Microsecond)
	fmt.Printf("  p90: %s\n", time.Duration(hist.ValueAtQuantile(90))*time.Microsecond)
	fmt.Printf("  p99: %s\n", time.Duration(hist.ValueAtQuantile(99))*time.Microsecond)
	fmt.Printf("  max: %s\n", time.Duration(hist.Max())*time.Microsecond)
}

func init() {
	addCommonFlags(getCmd)
	getCmd.Flags().String("extract", "", "Print a single field from the response (gjson path)")
	getCmd.Flags().String("schema", "", "Validate the response against a JSON Schema file")
	getCmd.Flags().Int("repeat", 1, "Issue the request N times sequentially and report latency percentiles")
}
