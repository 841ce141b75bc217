package config

import (
	"strings"

	"github.com/timo-cingoez/cURLy/internal/curly"
)

// NewClient builds a request builder preconfigured from the environment.
func (e Environment) NewClient() (*curly.Client, error) {
	opts := curly.Options{}
	timeout, err := e.ParseTimeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts[curly.OptTimeout] = timeout
	}

	client, err := curly.New(e.BaseURL, opts)
	if err != nil {
		return nil, err
	}

	for _, line := range e.Headers {
		client.WithHeader(line)
	}

	if strings.EqualFold(e.BodyFormat, "json") {
		client.SetBodyFormat(curly.FormatJSON)
	}
	if strings.EqualFold(e.ResponseMode, "object") {
		client.SetResponseMode(curly.ModeObject, curly.DecodeOptions{})
	}
	if e.Logging != nil && e.Logging.Enabled {
		client.SetLogging(true, e.Logging.Directory)
	}
	if e.TrustLocalhost {
		client.SetTrustPolicy(curly.LocalhostOnly)
	}

	if e.Auth != nil {
		data := map[string]string{
			"username": e.Auth.Username,
			"password": e.Auth.Password,
			"token":    e.Auth.Token,
		}
		if _, err := client.SetAuthentication(curly.AuthMethod(strings.ToUpper(e.Auth.Method)), data); err != nil {
			return nil, err
		}
	}

	return client, nil
}
