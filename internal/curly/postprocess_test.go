package curly

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestSplitRawOutput(t *testing.T) {
	output := []byte("HEADERBLOCK" + "bodytext")

	header, body := splitRawOutput(output, 11)
	if string(header) != "HEADERBLOCK" {
		t.Errorf("Expected header HEADERBLOCK, got %q", header)
	}
	if string(body) != "bodytext" {
		t.Errorf("Expected body bodytext, got %q", body)
	}
}

func TestSplitRawOutput_EmptyHeader(t *testing.T) {
	header, body := splitRawOutput([]byte("justbody"), 0)
	if len(header) != 0 {
		t.Errorf("Expected empty header, got %q", header)
	}
	if string(body) != "justbody" {
		t.Errorf("Expected body justbody, got %q", body)
	}
}

func TestSplitRawOutput_EmptyBody(t *testing.T) {
	output := []byte("onlyheaders")
	header, body := splitRawOutput(output, len(output))
	if string(header) != "onlyheaders" {
		t.Errorf("Expected header onlyheaders, got %q", header)
	}
	if len(body) != 0 {
		t.Errorf("Expected empty body, got %q", body)
	}
}

func TestSplitRawOutput_ClampsOutOfRange(t *testing.T) {
	output := []byte("abc")

	header, body := splitRawOutput(output, 100)
	if string(header) != "abc" || len(body) != 0 {
		t.Errorf("Expected full header and empty body, got %q %q", header, body)
	}

	header, body = splitRawOutput(output, -5)
	if len(header) != 0 || string(body) != "abc" {
		t.Errorf("Expected empty header and full body, got %q %q", header, body)
	}
}

func TestPostProcess_StatusRange(t *testing.T) {
	cases := []struct {
		code int
		ok   bool
	}{
		{199, false},
		{200, true},
		{201, true},
		{204, true}, // empty body fails later, at decode time
		{207, true},
		{208, false},
		{301, false},
		{404, false},
		{500, false},
	}

	for _, tc := range cases {
		client, _ := New("https://api.example.com", nil)
		raw := &RawResponse{
			StatusCode: tc.code,
			HeaderSize: 0,
			Output:     []byte(`{"ok":true}`),
		}

		_, err := client.postProcess(raw, nil, nil)
		var statusErr *StatusError
		if tc.ok {
			if errors.As(err, &statusErr) {
				t.Errorf("Status %d: expected no StatusError, got %v", tc.code, err)
			}
		} else {
			if !errors.As(err, &statusErr) {
				t.Fatalf("Status %d: expected StatusError, got %v", tc.code, err)
			}
			if statusErr.Code != tc.code {
				t.Errorf("Expected StatusError code %d, got %d", tc.code, statusErr.Code)
			}
		}
	}
}

func TestPostProcess_StatusErrorCarriesBody(t *testing.T) {
	client, _ := New("https://api.example.com", nil)
	header := "HTTP/1.1 404 Not Found\r\n\r\n"
	raw := &RawResponse{
		StatusCode: 404,
		HeaderSize: len(header),
		Output:     []byte(header + "resource missing"),
	}

	_, err := client.postProcess(raw, nil, nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.Body != "resource missing" {
		t.Errorf("Expected body to be preserved, got %q", statusErr.Body)
	}
}

func TestDecodeResponse_MapMode(t *testing.T) {
	value, err := decodeResponse([]byte(`{"id":1,"title":"x"}`), ModeMap, DecodeOptions{})
	if err != nil {
		t.Fatalf("Error decoding: %v", err)
	}

	expected := map[string]any{"id": float64(1), "title": "x"}
	if !reflect.DeepEqual(value, expected) {
		t.Errorf("Expected %v, got %v", expected, value)
	}
}

func TestDecodeResponse_ObjectMode(t *testing.T) {
	value, err := decodeResponse([]byte(`{"user":{"name":"alice"}}`), ModeObject, DecodeOptions{})
	if err != nil {
		t.Fatalf("Error decoding: %v", err)
	}

	result, ok := value.(gjson.Result)
	if !ok {
		t.Fatalf("Expected gjson.Result, got %T", value)
	}
	if got := result.Get("user.name").String(); got != "alice" {
		t.Errorf("Expected user.name alice, got %q", got)
	}
}

func TestDecodeResponse_InvalidJSON(t *testing.T) {
	for _, mode := range []ResponseMode{ModeMap, ModeObject} {
		_, err := decodeResponse([]byte(`{"broken":`), mode, DecodeOptions{})
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("Mode %v: expected FormatError, got %v", mode, err)
		}
	}
}

func TestDecodeResponse_EmptyBody(t *testing.T) {
	_, err := decodeResponse([]byte("  \n"), ModeMap, DecodeOptions{})
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("Expected FormatError for empty body, got %v", err)
	}
}

func TestDecodeResponse_MaxDepth(t *testing.T) {
	nested := strings.Repeat("[", 6) + "1" + strings.Repeat("]", 6)

	if _, err := decodeResponse([]byte(nested), ModeMap, DecodeOptions{MaxDepth: 6}); err != nil {
		t.Fatalf("Expected depth 6 to be accepted: %v", err)
	}

	_, err := decodeResponse([]byte(nested), ModeMap, DecodeOptions{MaxDepth: 5})
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Expected FormatError for exceeded depth, got %v", err)
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Errorf("Expected error to name the depth limit, got %q", err.Error())
	}
}

func TestDecodeResponse_UseNumber(t *testing.T) {
	value, err := decodeResponse([]byte(`{"big":9007199254740993}`), ModeMap, DecodeOptions{Flags: FlagUseNumber})
	if err != nil {
		t.Fatalf("Error decoding: %v", err)
	}

	m := value.(map[string]any)
	num, ok := m["big"].(json.Number)
	if !ok {
		t.Fatalf("Expected json.Number, got %T", m["big"])
	}
	if num.String() != "9007199254740993" {
		t.Errorf("Expected precise number, got %s", num.String())
	}
}

func TestDecodeResponse_TrailingData(t *testing.T) {
	_, err := decodeResponse([]byte(`{"a":1} garbage`), ModeMap, DecodeOptions{})
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("Expected FormatError for trailing data, got %v", err)
	}
}
