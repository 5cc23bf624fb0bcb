// Package config holds the immutable run configuration: which local files to
// reconcile, the remote directory they map into, and where the server and
// credential live. It is constructed once at process start; nothing in the
// reconciliation core reads ambient configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/boxsync/boxsync/internal/utils"
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigPath = filepath.Join(home, ".boxsync", "config.json")
	DefaultTokenPath  = filepath.Join(home, ".boxsync", "token.json")
	DefaultServerURL  = "https://boxsync.net"
	DefaultRemoteDir  = "/boxsync"
)

var (
	ErrNoFiles      = errors.New("config: no files to sync")
	ErrNoRemoteDir  = errors.New("config: remote dir unset")
	ErrBadServerURL = errors.New("config: invalid server url")
)

type Config struct {
	Files     []string `json:"files"`
	RemoteDir string   `json:"remote_dir"`
	ServerURL string   `json:"server_url"`
	TokenPath string   `json:"token_path"`
	Path      string   `json:"-"`
}

// Validate checks required values and normalizes paths. It must pass before
// any network call is made.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return ErrNoFiles
	}

	for i, f := range c.Files {
		resolved, err := utils.ResolvePath(f)
		if err != nil {
			return fmt.Errorf("config: file %q: %w", f, err)
		}
		c.Files[i] = resolved
	}

	if strings.TrimSpace(c.RemoteDir) == "" {
		return ErrNoRemoteDir
	}
	c.RemoteDir = "/" + strings.Trim(c.RemoteDir, "/")

	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadServerURL, c.ServerURL)
	}

	if c.TokenPath == "" {
		c.TokenPath = DefaultTokenPath
	}
	resolved, err := utils.ResolvePath(c.TokenPath)
	if err != nil {
		return fmt.Errorf("config: token path: %w", err)
	}
	c.TokenPath = resolved

	return nil
}

// Save writes the config as JSON to its Path.
func (c *Config) Save() error {
	if err := utils.EnsureParent(c.Path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o644)
}

// Load reads a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse %q: %w", path, err)
	}

	cfg.Path = path
	return &cfg, nil
}
