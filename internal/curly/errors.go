package curly

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
)

// ConfigError reports an unusable builder configuration, such as an empty
// target URL or incomplete authentication data.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// TransportError reports a failed HTTP exchange: the request never produced
// a response. Code is a coarse failure class derived from the underlying
// network error.
type TransportError struct {
	Code string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure (%s): %v", e.Code, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a response whose status code falls outside the
// accepted range. Body carries the raw response body text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Code)
}

// LoggingError reports a request log that could not be persisted. It aborts
// the whole call even when the HTTP exchange itself succeeded.
type LoggingError struct {
	Dir string
	Err error
}

func (e *LoggingError) Error() string {
	return fmt.Sprintf("cannot write request log to %q: %v", e.Dir, e.Err)
}

func (e *LoggingError) Unwrap() error { return e.Err }

// FormatError reports a response body that could not be decoded as JSON.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("response is not valid JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Transport failure classes reported on TransportError.Code.
const (
	FailDNS      = "dns"
	FailTimeout  = "timeout"
	FailTLS      = "tls"
	FailConnect  = "connect"
	FailProtocol = "protocol"
)

// classifyTransport maps a network-level error onto a failure class.
func classifyTransport(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailTimeout
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return FailTLS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailConnect
	}

	return FailProtocol
}
