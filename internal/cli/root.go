// Package cli wires the curly request builder into a cobra command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "curly",
	Short:   "A small fluent HTTP client with wire-level request logging",
	Version: version,
	Long: `curly is a thin, chainable wrapper around plain HTTP: issue GET, POST,
PUT and PATCH requests, optionally authenticate, optionally write the raw
request/response exchange to per-request log files, and decode JSON
responses into a map or a path-addressable object.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(patchCmd)
}
