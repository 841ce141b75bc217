package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timo-cingoez/cURLy/internal/curly"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run:   runBodyVerb("POST"),
}

var putCmd = &cobra.Command{
	Use:   "put URL",
	Short: "Make a PUT request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run:   runBodyVerb("PUT"),
}

var patchCmd = &cobra.Command{
	Use:   "patch URL",
	Short: "Make a PATCH request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run:   runBodyVerb("PATCH"),
}

// runBodyVerb builds the shared Run func for the body-bearing verbs, which
// differ only in the method they dispatch.
func runBodyVerb(method string) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		targetURL := args[0]
		formatter := formatterFromFlags(cmd)

		client, err := clientFromFlags(cmd, targetURL)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		pairs, _ := cmd.Flags().GetStringArray("data")
		fields, err := parseFields(pairs)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			client.SetBodyFormat(curly.FormatJSON)
		}

		headers, _ := cmd.Flags().GetStringArray("header")
		fmt.Print(formatter.FormatRequest(method, targetURL, headers, displayBody(fields, asJSON)))

		ctx := context.Background()
		start := time.Now()
		var value any
		switch method {
		case "PUT":
			value, err = client.Put(ctx, fields, targetURL)
		case "PATCH":
			value, err = client.Patch(ctx, fields, targetURL)
		default:
			value, err = client.Post(ctx, fields, targetURL)
		}
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		fmt.Print(formatter.FormatResult(value, time.Since(start)))
	}
}

func init() {
	for _, cmd := range []*cobra.Command{postCmd, putCmd, patchCmd} {
		addCommonFlags(cmd)
		addBodyFlags(cmd)
	}
}
