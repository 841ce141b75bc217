package curly

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"strings"
	"time"
)

// PerformOptions is the fully merged option set handed to a Transport for a
// single exchange.
type PerformOptions struct {
	URL             string
	Method          string
	Body            string
	Headers         []string // raw "Name: value" lines, in order
	CaptureHeaders  bool
	FollowRedirects bool
	Insecure        bool   // disable certificate verification for this call
	BasicCreds      string // "user:password", empty when unset
	UserAgent       string
	Timeout         time.Duration
	VerboseSink     io.Writer // optional wire-level diagnostics target
}

// RawResponse is the transport-layer result: the final status code and the
// combined raw output, with HeaderSize marking where the header block ends
// and the body begins.
type RawResponse struct {
	StatusCode int
	HeaderSize int
	Output     []byte
}

// Transport performs one HTTP exchange. Implementations must scope any
// connection state to the single call and release it on every exit path.
type Transport interface {
	Perform(ctx context.Context, opts PerformOptions) (*RawResponse, error)
}

// HTTPTransport is the net/http-backed Transport used by default.
type HTTPTransport struct{}

// NewHTTPTransport returns a ready-to-use HTTPTransport.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{}
}

// Perform executes the exchange described by opts. The underlying connection
// is private to the call and closed before returning, success or failure.
func (t *HTTPTransport) Perform(ctx context.Context, opts PerformOptions) (*RawResponse, error) {
	var bodyReader io.Reader
	if opts.Body != "" {
		bodyReader = strings.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, bodyReader)
	if err != nil {
		return nil, err
	}

	for _, line := range opts.Headers {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	if opts.BasicCreds != "" {
		user, pass, _ := strings.Cut(opts.BasicCreds, ":")
		req.SetBasicAuth(user, pass)
	}

	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.Insecure},
	}
	// The connection is scoped to this one request.
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	if opts.VerboseSink != nil {
		req = req.WithContext(httptrace.WithClientTrace(req.Context(), verboseTrace(opts.VerboseSink)))
		writeRequestLines(opts.VerboseSink, req, opts.Body)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if opts.VerboseSink != nil {
		writeResponseLines(opts.VerboseSink, resp, len(bodyBytes))
	}

	var buf bytes.Buffer
	headerSize := 0
	if opts.CaptureHeaders {
		buf.WriteString(resp.Proto + " " + resp.Status + "\r\n")
		_ = resp.Header.Write(&buf)
		buf.WriteString("\r\n")
		headerSize = buf.Len()
	}
	buf.Write(bodyBytes)

	return &RawResponse{
		StatusCode: resp.StatusCode,
		HeaderSize: headerSize,
		Output:     buf.Bytes(),
	}, nil
}

// verboseTrace emits connection-level events in curl's "*" notation.
func verboseTrace(w io.Writer) *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			fmt.Fprintf(w, "* Resolving %s\n", info.Host)
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			for _, addr := range info.Addrs {
				fmt.Fprintf(w, "* Resolved to %s\n", addr.String())
			}
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				fmt.Fprintf(w, "* Connected to %s (%s)\n", addr, network)
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				fmt.Fprintf(w, "* TLS handshake complete, protocol %s\n", state.NegotiatedProtocol)
			}
		},
	}
}

func writeRequestLines(w io.Writer, req *http.Request, body string) {
	path := req.URL.RequestURI()
	fmt.Fprintf(w, "> %s %s HTTP/1.1\n", req.Method, path)
	fmt.Fprintf(w, "> Host: %s\n", req.URL.Host)
	for name, values := range req.Header {
		for _, value := range values {
			fmt.Fprintf(w, "> %s: %s\n", name, value)
		}
	}
	if body != "" {
		fmt.Fprintf(w, "> \n> %s\n", body)
	}
}

func writeResponseLines(w io.Writer, resp *http.Response, bodyLen int) {
	fmt.Fprintf(w, "< %s %s\n", resp.Proto, resp.Status)
	for name, values := range resp.Header {
		for _, value := range values {
			fmt.Fprintf(w, "< %s: %s\n", name, value)
		}
	}
	fmt.Fprintf(w, "* Received %d body bytes\n", bodyLen)
}
