package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addCommonFlags(cmd)
	addBodyFlags(cmd)
	return cmd
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"title=foo", "body=bar", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "foo", "body": "bar", "empty": ""}, fields)
}

func TestParseFields_ValueWithEquals(t *testing.T) {
	fields, err := parseFields([]string{"query=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", fields["query"])
}

func TestParseFields_Malformed(t *testing.T) {
	_, err := parseFields([]string{"noequals"})
	assert.ErrorContains(t, err, "malformed field")

	_, err = parseFields([]string{"=value"})
	assert.Error(t, err)
}

func TestDisplayBody(t *testing.T) {
	fields := map[string]any{"name": "hello world"}

	assert.Equal(t, "name=hello+world", displayBody(fields, false))
	assert.Equal(t, `{"name":"hello world"}`, displayBody(fields, true))
	assert.Equal(t, "", displayBody(nil, false))
}

func TestClientFromFlags_Defaults(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	client, err := clientFromFlags(cmd, "https://api.example.com")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientFromFlags_EmptyURL(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	_, err := clientFromFlags(cmd, "  ")
	assert.Error(t, err)
}

func TestClientFromFlags_MalformedAuth(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--auth", "nopassword"}))

	_, err := clientFromFlags(cmd, "https://api.example.com")
	assert.ErrorContains(t, err, "user:password")
}

func TestClientFromFlags_Auth(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--auth", "alice:s3cret", "--token", "abc"}))

	client, err := clientFromFlags(cmd, "https://api.example.com")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientFromFlags_Profile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curly.yaml")
	profile := "default: dev\nenvironments:\n  dev:\n    baseUrl: http://localhost:8080\n"
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o644))

	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	client, err := clientFromFlags(cmd, "http://localhost:8080/todos")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientFromFlags_UnknownEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curly.yaml")
	profile := "environments:\n  dev:\n    baseUrl: http://localhost:8080\n"
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o644))

	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--env", "staging"}))

	_, err := clientFromFlags(cmd, "http://localhost:8080")
	assert.ErrorContains(t, err, "unknown environment")
}
