package curly

import "time"

// Options is a bag of transport-level settings keyed by option name.
// Callers may seed it at construction time; the executor merges per-call
// directives and the fixed capture baseline on top of it before dispatch.
type Options map[string]any

// Known option names.
const (
	// OptFollowRedirects (bool) lets the transport follow 3xx redirects.
	OptFollowRedirects = "followRedirects"

	// OptBasicCredentials (string, "user:password") enables HTTP basic
	// authentication on the request.
	OptBasicCredentials = "basicCredentials"

	// OptTimeout (time.Duration) bounds the whole exchange. Zero means no
	// limit beyond what the operating system enforces.
	OptTimeout = "timeout"

	// OptUserAgent (string) overrides the default User-Agent header.
	OptUserAgent = "userAgent"

	// OptCaptureHeaders and OptCaptureBody (bool) control response capture.
	// The executor forces both to true on every request; values set by the
	// caller are overridden.
	OptCaptureHeaders = "captureHeaders"
	OptCaptureBody    = "captureBody"
)

// clone returns a private, never-nil copy.
func (o Options) clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

func (o Options) boolVal(name string) bool {
	v, ok := o[name].(bool)
	return ok && v
}

func (o Options) stringVal(name string) string {
	v, _ := o[name].(string)
	return v
}

func (o Options) durationVal(name string) time.Duration {
	v, _ := o[name].(time.Duration)
	return v
}
