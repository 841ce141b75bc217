package curly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Get issues a GET request. urlOverride replaces the configured target URL
// for this single call; pass "" to use the configured one.
func (c *Client) Get(ctx context.Context, urlOverride string) (any, error) {
	return c.execute(ctx, http.MethodGet, nil, urlOverride)
}

// Post issues a POST request carrying body, serialized per the configured
// body format.
func (c *Client) Post(ctx context.Context, body map[string]any, urlOverride string) (any, error) {
	return c.execute(ctx, http.MethodPost, body, urlOverride)
}

// Put issues a PUT request carrying body.
func (c *Client) Put(ctx context.Context, body map[string]any, urlOverride string) (any, error) {
	return c.execute(ctx, http.MethodPut, body, urlOverride)
}

// Patch issues a PATCH request carrying body.
func (c *Client) Patch(ctx context.Context, body map[string]any, urlOverride string) (any, error) {
	return c.execute(ctx, http.MethodPatch, body, urlOverride)
}

// execute runs the full pipeline for one verb: merge options, dispatch to
// the transport, then split, validate, log and decode the response. The
// steps are strictly sequential and every error aborts the call.
func (c *Client) execute(ctx context.Context, method string, body map[string]any, urlOverride string) (any, error) {
	target := c.baseURL
	if urlOverride != "" {
		target = urlOverride
	}

	opts := c.options.clone()
	headers := append([]string(nil), c.headers...)

	var sentBody string
	if body != nil {
		payload, contentType, err := encodeBody(body, c.bodyFormat)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("cannot encode request body: %v", err)}
		}
		sentBody = payload
		headers = append(headers, "Content-Type: "+contentType)
	}

	// Fixed baseline, merged last: response header and body capture are
	// always on, whatever the caller put in the option set.
	opts[OptCaptureHeaders] = true
	opts[OptCaptureBody] = true

	perform := PerformOptions{
		URL:             target,
		Method:          method,
		Body:            sentBody,
		Headers:         headers,
		CaptureHeaders:  true,
		FollowRedirects: opts.boolVal(OptFollowRedirects),
		BasicCreds:      opts.stringVal(OptBasicCredentials),
		UserAgent:       opts.stringVal(OptUserAgent),
		Timeout:         opts.durationVal(OptTimeout),
	}

	if c.trust != nil && c.trust(hostOf(target)) {
		perform.Insecure = true
	}

	var verbose *bytes.Buffer
	var sinks []io.Writer
	if c.logEnabled {
		verbose = &bytes.Buffer{}
		sinks = append(sinks, verbose)
	}
	if c.verboseSink != nil {
		sinks = append(sinks, c.verboseSink)
	}
	switch len(sinks) {
	case 1:
		perform.VerboseSink = sinks[0]
	case 2:
		perform.VerboseSink = io.MultiWriter(sinks...)
	}

	raw, err := c.transport.Perform(ctx, perform)
	if err != nil {
		return nil, &TransportError{Code: classifyTransport(err), Err: err}
	}

	var logSink *logFile
	if c.logEnabled {
		logSink = newLogFile(c.logDir, sentBody)
	}

	return c.postProcess(raw, verbose, logSink)
}

// encodeBody serializes a payload map and names its media type.
func encodeBody(fields map[string]any, format BodyFormat) (payload, contentType string, err error) {
	if format == FormatJSON {
		encoded, err := json.Marshal(fields)
		if err != nil {
			return "", "", err
		}
		return string(encoded), "application/json", nil
	}

	values := url.Values{}
	for name, value := range fields {
		values.Set(name, fmt.Sprint(value))
	}
	return values.Encode(), "application/x-www-form-urlencoded", nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
