package config

import "time"

// Config is the top-level ach configuration.
type Config struct {
	// Remote is the git remote whose URL locates the repository.
	Remote string `json:"remote"`
	// Output is the report format: text, json or yaml.
	Output string    `json:"output"`
	ADO    ADOConfig `json:"ado"`
}

// ADOConfig holds Azure DevOps connection settings.
type ADOConfig struct {
	BaseURL    string `json:"base_url"`
	APIVersion string `json:"api_version"`
	// AuthScheme is "basic" for a personal access token or "bearer" for an
	// OAuth/Entra access token.
	AuthScheme string `json:"auth_scheme"`
	PAT        string `json:"pat,omitempty"`
	// Timeout bounds each HTTP request; "0" disables it.
	Timeout string `json:"timeout"`
}

// ParseTimeout returns the request timeout as a time.Duration.
func (a ADOConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d < 0 {
		return 60 * time.Second
	}
	return d
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Remote: "origin",
		Output: "text",
		ADO: ADOConfig{
			BaseURL:    "https://dev.azure.com",
			APIVersion: "7.1",
			AuthScheme: "basic",
			Timeout:    "60s",
		},
	}
}
