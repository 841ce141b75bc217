package curly

import (
	"errors"
	"fmt"
	"net"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&net.DNSError{Err: "no such host", Name: "nope.example"}, FailDNS},
		{timeoutError{}, FailTimeout},
		{&net.OpError{Op: "dial", Err: errors.New("connection refused")}, FailConnect},
		{errors.New("malformed response"), FailProtocol},
		{fmt.Errorf("request: %w", &net.OpError{Op: "dial", Err: errors.New("refused")}), FailConnect},
	}

	for _, tc := range cases {
		if got := classifyTransport(tc.err); got != tc.want {
			t.Errorf("classifyTransport(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cfg := &ConfigError{Reason: "target URL must not be empty"}
	if cfg.Error() != "configuration error: target URL must not be empty" {
		t.Errorf("Unexpected ConfigError message: %q", cfg.Error())
	}

	status := &StatusError{Code: 418, Body: "teapot"}
	if status.Error() != "unexpected HTTP status 418" {
		t.Errorf("Unexpected StatusError message: %q", status.Error())
	}

	cause := errors.New("disk full")
	logErr := &LoggingError{Dir: "log", Err: cause}
	if !errors.Is(logErr, cause) {
		t.Error("Expected LoggingError to wrap its cause")
	}
}
