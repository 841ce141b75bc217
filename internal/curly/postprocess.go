package curly

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Accepted status range, inclusive. Narrow by contract: it covers 2xx
// success up to WebDAV multi-status and nothing else, so redirects and 208
// fail like any other status.
const (
	minAcceptedStatus = 200
	maxAcceptedStatus = 207
)

// postProcess turns a raw transport result into the value returned to the
// caller: split headers from body, validate the status code, persist the
// request log when one is armed, then decode the body as JSON.
func (c *Client) postProcess(raw *RawResponse, verbose *bytes.Buffer, logSink *logFile) (any, error) {
	_, body := splitRawOutput(raw.Output, raw.HeaderSize)

	if raw.StatusCode < minAcceptedStatus || raw.StatusCode > maxAcceptedStatus {
		return nil, &StatusError{Code: raw.StatusCode, Body: string(body)}
	}

	if logSink != nil {
		var diagnostics []byte
		if verbose != nil {
			diagnostics = verbose.Bytes()
		}
		if _, err := logSink.flush(diagnostics, body); err != nil {
			return nil, err
		}
	}

	return decodeResponse(body, c.responseMode, c.decodeOpts)
}

// splitRawOutput cuts the combined transport output at headerSize: the
// header block is exactly the first headerSize bytes, the body the rest.
// Out-of-range sizes are clamped.
func splitRawOutput(output []byte, headerSize int) (header, body []byte) {
	if headerSize < 0 {
		headerSize = 0
	}
	if headerSize > len(output) {
		headerSize = len(output)
	}
	return output[:headerSize], output[headerSize:]
}

// decodeResponse parses body as JSON in the requested shape. Decoding is
// unconditional: a non-JSON body is a FormatError, there is no raw
// passthrough.
func decodeResponse(body []byte, mode ResponseMode, opts DecodeOptions) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &FormatError{Err: errors.New("empty response body")}
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if err := checkDepth(body, maxDepth); err != nil {
		return nil, &FormatError{Err: err}
	}

	if mode == ModeObject {
		if !gjson.ValidBytes(body) {
			return nil, &FormatError{Err: errors.New("malformed JSON document")}
		}
		return gjson.ParseBytes(body), nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if opts.Flags&FlagUseNumber != 0 {
		dec.UseNumber()
	}

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &FormatError{Err: err}
	}
	if dec.More() {
		return nil, &FormatError{Err: errors.New("trailing data after JSON value")}
	}
	return value, nil
}

// checkDepth walks the token stream and rejects documents nested deeper
// than max. It also surfaces plain syntax errors, with the parser's own
// diagnostic.
func checkDepth(body []byte, max int) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		delim, ok := tok.(json.Delim)
		if !ok {
			continue
		}
		switch delim {
		case '{', '[':
			depth++
			if depth > max {
				return fmt.Errorf("maximum nesting depth %d exceeded", max)
			}
		case '}', ']':
			depth--
		}
	}
}
