package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/tidwall/jsonc"
)

// ErrMissingCredential is returned by Validate when no ADO token is configured.
var ErrMissingCredential = errors.New("ADO_PAT is not set: export a personal access token or set ado.pat in the config")

// Load reads and merges configuration from user-level and repo-level JSONC files.
// Resolution order: defaults → user config (~/.config/ach/ach.jsonc) → repo config
// (.ach/ach.jsonc of the repository containing dir, or the current directory
// when dir is empty) → the file at path, if given → environment variables.
// Missing user and repo files are skipped; unreadable or malformed ones are errors.
func Load(path, dir string) (*Config, error) {
	cfg := DefaultConfig()

	if err := mergeOptional(&cfg, "user", UserConfigPath()); err != nil {
		return nil, err
	}
	if err := mergeOptional(&cfg, "repo", RepoConfigPath(dir)); err != nil {
		return nil, err
	}

	// An explicitly requested file must exist.
	if path != "" {
		m, err := loadJSONC(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		if err := mergeIntoConfig(&cfg, m); err != nil {
			return nil, fmt.Errorf("merging config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// Validate reports configuration errors that must stop the run before any
// git or network call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ADO.PAT) == "" {
		return ErrMissingCredential
	}
	switch c.ADO.AuthScheme {
	case "", "basic", "bearer":
	default:
		return fmt.Errorf("unknown ado.auth_scheme %q (want basic or bearer)", c.ADO.AuthScheme)
	}
	switch c.Output {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output %q (want text, json or yaml)", c.Output)
	}
	return nil
}

// UserConfigPath returns the user-level config file path, or "" when the
// user config directory cannot be determined.
func UserConfigPath() string {
	userDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(userDir, "ach", "ach.jsonc")
}

// RepoConfigPath returns the repo-level config file path for the repository
// containing dir (the current directory when empty), or "" when dir is not
// inside a git repository.
func RepoConfigPath(dir string) string {
	root := findRepoRoot(dir)
	if root == "" {
		return ""
	}
	return filepath.Join(root, ".ach", "ach.jsonc")
}

// mergeOptional merges the JSONC file at path into cfg. A path of "" or a
// file that does not exist is skipped.
func mergeOptional(cfg *Config, layer, path string) error {
	if path == "" {
		return nil
	}
	m, err := loadJSONC(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s config: %w", layer, err)
	}
	if err := mergeIntoConfig(cfg, m); err != nil {
		return fmt.Errorf("merging %s config: %w", layer, err)
	}
	return nil
}

// loadJSONC reads a JSONC file and returns it as a map.
func loadJSONC(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jsonData := jsonc.ToJSON(data)
	var m map[string]any
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// mergeIntoConfig marshals the config to a map, deep-merges the source map over it,
// then unmarshals back to the Config struct.
func mergeIntoConfig(cfg *Config, src map[string]any) error {
	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var dst map[string]any
	if err := json.Unmarshal(cfgBytes, &dst); err != nil {
		return err
	}

	// Deep merge: src overrides dst
	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return err
	}

	merged, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, cfg)
}

// findRepoRoot finds the root of the git repository containing dir via git rev-parse.
func findRepoRoot(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// applyEnvOverrides applies environment variable overrides to the config.
// ACH_ADO_PAT wins over ADO_PAT.
func applyEnvOverrides(cfg *Config) {
	if pat := os.Getenv("ADO_PAT"); pat != "" {
		cfg.ADO.PAT = pat
	}
	if pat := os.Getenv("ACH_ADO_PAT"); pat != "" {
		cfg.ADO.PAT = pat
	}
	if remote := os.Getenv("ACH_REMOTE"); remote != "" {
		cfg.Remote = remote
	}
	if output := os.Getenv("ACH_OUTPUT"); output != "" {
		cfg.Output = output
	}
}
