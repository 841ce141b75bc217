package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/timo-cingoez/cURLy/internal/config"
	"github.com/timo-cingoez/cURLy/internal/curly"
	"github.com/timo-cingoez/cURLy/internal/logger"
	"github.com/timo-cingoez/cURLy/internal/output"
)

// addCommonFlags registers the flags shared by every verb command.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().BoolP("verbose", "v", false, "Stream wire-level diagnostics to stderr")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("log", "", "Write per-request log files into this directory")
	cmd.Flags().Lookup("log").NoOptDefVal = "log"
	cmd.Flags().Bool("object", false, "Decode the response as a path-addressable object instead of a map")
	cmd.Flags().Int("depth", 0, "Maximum JSON nesting depth accepted when decoding")
	cmd.Flags().Bool("use-number", false, "Preserve JSON numbers exactly instead of using floats")
	cmd.Flags().Bool("insecure-localhost", false, "Skip certificate verification for localhost targets only")
	cmd.Flags().String("auth", "", "BASIC credentials as user:password")
	cmd.Flags().String("token", "", "OAUTH bearer token")
	cmd.Flags().String("config", "", "Profile file with named environments")
	cmd.Flags().String("env", "", "Environment to use from the profile file")
}

// addBodyFlags registers the flags for body-bearing verbs.
func addBodyFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("data", "d", []string{}, "Body field as key=value (can be used multiple times)")
	cmd.Flags().BoolP("json", "j", false, "Send the body JSON-encoded instead of form-encoded")
}

// clientFromFlags builds the request builder from the common flags, starting
// from a profile environment when one is selected. Flags win over profile
// values.
func clientFromFlags(cmd *cobra.Command, targetURL string) (*curly.Client, error) {
	configPath, _ := cmd.Flags().GetString("config")
	envName, _ := cmd.Flags().GetString("env")

	var client *curly.Client
	if configPath != "" {
		profiles, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		env, err := profiles.Environment(envName)
		if err != nil {
			return nil, err
		}
		client, err = env.NewClient()
		if err != nil {
			return nil, err
		}
		logger.Get().Debug().Str("config", configPath).Str("env", envName).Msg("profile applied")
	} else {
		var err error
		client, err = curly.New(targetURL, nil)
		if err != nil {
			return nil, err
		}
	}

	// The flag default applies unless a profile supplied a timeout and the
	// caller left the flag alone.
	if configPath == "" || cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		client.SetOption(curly.OptTimeout, timeout)
	}

	headers, _ := cmd.Flags().GetStringArray("header")
	for _, line := range headers {
		client.WithHeader(line)
	}

	if logDir, _ := cmd.Flags().GetString("log"); logDir != "" {
		client.SetLogging(true, logDir)
	}

	if object, _ := cmd.Flags().GetBool("object"); object || cmd.Flags().Changed("depth") || cmd.Flags().Changed("use-number") {
		depth, _ := cmd.Flags().GetInt("depth")
		useNumber, _ := cmd.Flags().GetBool("use-number")
		opts := curly.DecodeOptions{MaxDepth: depth}
		if useNumber {
			opts.Flags |= curly.FlagUseNumber
		}
		mode := curly.ModeMap
		if object {
			mode = curly.ModeObject
		}
		client.SetResponseMode(mode, opts)
	}

	if trust, _ := cmd.Flags().GetBool("insecure-localhost"); trust {
		client.SetTrustPolicy(curly.LocalhostOnly)
	}

	if authSpec, _ := cmd.Flags().GetString("auth"); authSpec != "" {
		username, password, ok := strings.Cut(authSpec, ":")
		if !ok {
			return nil, fmt.Errorf("malformed --auth value, expected user:password")
		}
		if _, err := client.SetAuthentication(curly.AuthBasic, map[string]string{
			"username": username,
			"password": password,
		}); err != nil {
			return nil, err
		}
	}

	if token, _ := cmd.Flags().GetString("token"); token != "" {
		if _, err := client.SetAuthentication(curly.AuthOAuth, map[string]string{"token": token}); err != nil {
			return nil, err
		}
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		client.SetVerbose(os.Stderr)
	}

	return client, nil
}

// formatterFromFlags builds the terminal formatter from the common flags.
func formatterFromFlags(cmd *cobra.Command) *output.Formatter {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return output.NewFormatter(verbose, noColor)
}

// parseFields turns repeated key=value flags into a body map.
func parseFields(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed field %q, expected key=value", pair)
		}
		fields[name] = value
	}
	return fields, nil
}

// displayBody renders a body map the way it will be sent, for the request
// echo line.
func displayBody(fields map[string]any, asJSON bool) string {
	if len(fields) == 0 {
		return ""
	}
	if asJSON {
		encoded, err := json.Marshal(fields)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
	values := url.Values{}
	for name, value := range fields {
		values.Set(name, fmt.Sprint(value))
	}
	return values.Encode()
}
