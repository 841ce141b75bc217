package config

import (
	"fmt"
	"strings"
	"time"
)

var (
	validBodyFormats   = []string{"", "form", "json"}
	validResponseModes = []string{"", "map", "object"}
	validAuthMethods   = []string{"BASIC", "OAUTH"}
)

// validate checks structural correctness of a parsed profile file.
func validate(p *Profiles) error {
	if len(p.Environments) == 0 {
		return fmt.Errorf("profile file defines no environments")
	}

	if p.Default != "" {
		if _, ok := p.Environments[p.Default]; !ok {
			return fmt.Errorf("default environment %q is not defined", p.Default)
		}
	}

	for name, env := range p.Environments {
		if err := validateEnvironment(env); err != nil {
			return fmt.Errorf("environment %q: %w", name, err)
		}
	}
	return nil
}

func validateEnvironment(env Environment) error {
	if strings.TrimSpace(env.BaseURL) == "" {
		return fmt.Errorf("baseUrl must not be empty")
	}

	if !stringInSlice(strings.ToLower(env.BodyFormat), validBodyFormats) {
		return fmt.Errorf("invalid bodyFormat %q, must be form or json", env.BodyFormat)
	}
	if !stringInSlice(strings.ToLower(env.ResponseMode), validResponseModes) {
		return fmt.Errorf("invalid responseMode %q, must be map or object", env.ResponseMode)
	}

	for _, line := range env.Headers {
		if !strings.Contains(line, ":") {
			return fmt.Errorf("malformed header line %q, expected \"Name: value\"", line)
		}
	}

	if env.Timeout != "" {
		if _, err := time.ParseDuration(env.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", env.Timeout, err)
		}
	}

	if env.Auth != nil {
		if err := validateAuth(*env.Auth); err != nil {
			return err
		}
	}
	return nil
}

func validateAuth(auth Auth) error {
	method := strings.ToUpper(auth.Method)
	if !stringInSlice(method, validAuthMethods) {
		return fmt.Errorf("invalid auth method %q, must be BASIC or OAUTH", auth.Method)
	}

	switch method {
	case "BASIC":
		if auth.Username == "" || auth.Password == "" {
			return fmt.Errorf("BASIC auth requires username and password")
		}
	case "OAUTH":
		if auth.Token == "" {
			return fmt.Errorf("OAUTH auth requires a token")
		}
	}
	return nil
}

func stringInSlice(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
