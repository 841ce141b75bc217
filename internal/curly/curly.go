// Package curly wraps a plain HTTP transport in a fluent, chainable request
// builder: configure a target once, optionally attach authentication,
// wire-level logging and a response decoding mode, then issue GET, POST, PUT
// or PATCH requests against it.
package curly

import (
	"io"
	"strings"
)

// BodyFormat selects how outgoing request payloads are serialized.
type BodyFormat int

const (
	// FormatForm encodes the payload as application/x-www-form-urlencoded.
	// This is the default.
	FormatForm BodyFormat = iota
	// FormatJSON encodes the payload as a JSON object.
	FormatJSON
)

// ResponseMode selects the shape a decoded JSON response body takes.
type ResponseMode int

const (
	// ModeMap decodes into generic Go values; JSON objects become
	// map[string]any. This is the default.
	ModeMap ResponseMode = iota
	// ModeObject parses into a gjson.Result, addressable by path.
	ModeObject
)

// AuthMethod names an authentication scheme for SetAuthentication.
type AuthMethod string

const (
	AuthBasic AuthMethod = "BASIC"
	AuthOAuth AuthMethod = "OAUTH"
)

// DecodeOptions tunes JSON response decoding.
type DecodeOptions struct {
	// MaxDepth bounds the nesting depth of the decoded document.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// Flags is a bitmask of Flag* values.
	Flags int
}

// FlagUseNumber makes ModeMap decoding preserve numbers as json.Number
// instead of float64.
const FlagUseNumber = 1 << 0

// DefaultMaxDepth is the nesting depth limit applied when DecodeOptions
// leaves MaxDepth unset.
const DefaultMaxDepth = 512

// DefaultLogDir is the log directory used when SetLogging is given an
// empty one.
const DefaultLogDir = "log"

// TrustPolicy decides whether certificate verification may be skipped for a
// host. It is consulted once per request with the target host name; a true
// return disables verification for that single call. A nil policy never
// skips verification.
type TrustPolicy func(host string) bool

// LocalhostOnly is a TrustPolicy for development use: it approves any host
// whose name contains "localhost" (case-insensitive) and nothing else.
func LocalhostOnly(host string) bool {
	return strings.Contains(strings.ToLower(host), "localhost")
}

// Client accumulates request configuration and executes requests against it.
//
// A Client is built for sequential, single-caller use: chained setters mutate
// the instance and return it, and one request runs at a time. It must not be
// shared across goroutines. It may be reused for several sequential requests,
// optionally against different URLs via the per-call URL override.
type Client struct {
	baseURL      string
	options      Options
	headers      []string
	bodyFormat   BodyFormat
	responseMode ResponseMode
	decodeOpts   DecodeOptions
	logEnabled   bool
	logDir       string
	trust        TrustPolicy
	transport    Transport
	verboseSink  io.Writer
}

// New creates a Client for the given target URL. transportOptions seeds the
// transport option set and may be nil. An empty or all-whitespace URL is a
// ConfigError.
func New(rawURL string, transportOptions Options) (*Client, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &ConfigError{Reason: "target URL must not be empty"}
	}

	return &Client{
		baseURL:    rawURL,
		options:    transportOptions.clone(),
		decodeOpts: DecodeOptions{MaxDepth: DefaultMaxDepth},
		logDir:     DefaultLogDir,
		transport:  NewHTTPTransport(),
	}, nil
}

// SetLogging toggles wire-level request logging. When enabled, every request
// writes one log file into dir (created on demand at execute time; failure to
// create or write it fails the request). An empty dir means DefaultLogDir.
func (c *Client) SetLogging(enabled bool, dir string) *Client {
	c.logEnabled = enabled
	if dir == "" {
		dir = DefaultLogDir
	}
	c.logDir = dir
	return c
}

// SetBodyFormat selects the payload encoding for subsequent body-bearing
// requests.
func (c *Client) SetBodyFormat(format BodyFormat) *Client {
	c.bodyFormat = format
	return c
}

// SetResponseMode selects the decoded response shape and its decode tuning.
func (c *Client) SetResponseMode(mode ResponseMode, opts DecodeOptions) *Client {
	c.responseMode = mode
	c.decodeOpts = opts
	return c
}

// SetTransport swaps the transport collaborator. Intended for tests and for
// callers providing their own exchange implementation.
func (c *Client) SetTransport(t Transport) *Client {
	c.transport = t
	return c
}

// SetTrustPolicy installs the policy consulted before disabling certificate
// verification. The default (nil) never disables it.
func (c *Client) SetTrustPolicy(p TrustPolicy) *Client {
	c.trust = p
	return c
}

// SetVerbose streams the transport's wire-level diagnostics to w in addition
// to any request log file.
func (c *Client) SetVerbose(w io.Writer) *Client {
	c.verboseSink = w
	return c
}

// SetAuthentication configures the named scheme.
//
// AuthBasic requires data["username"] and data["password"]; it installs
// basic credentials and enables redirect following. AuthOAuth requires
// data["token"] and appends a single "Authorization: Bearer <token>" header.
// Missing fields are a ConfigError. Unknown methods are deliberately ignored.
func (c *Client) SetAuthentication(method AuthMethod, data map[string]string) (*Client, error) {
	switch method {
	case AuthBasic:
		username, password := data["username"], data["password"]
		if username == "" || password == "" {
			return nil, &ConfigError{Reason: "BASIC authentication requires username and password"}
		}
		c.options[OptBasicCredentials] = username + ":" + password
		c.options[OptFollowRedirects] = true

	case AuthOAuth:
		token := data["token"]
		if token == "" {
			return nil, &ConfigError{Reason: "OAUTH authentication requires a token"}
		}
		c.headers = append(c.headers, "Authorization: Bearer "+token)
	}

	return c, nil
}

// SetOption puts a single transport option into the accumulated option set.
func (c *Client) SetOption(name string, value any) *Client {
	c.options[name] = value
	return c
}

// WithHeader appends a raw "Name: value" header line sent on every request.
func (c *Client) WithHeader(line string) *Client {
	c.headers = append(c.headers, line)
	return c
}
