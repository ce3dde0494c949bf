package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Backdeck needs to reach and administer a site.
type Config struct {
	Site       string // free-form site address, normalized at login
	Username   string // pre-filled on the login form
	CompatHost string // virtual host sent when the site is a bare IP
	Timeout    time.Duration
	PollEvery  time.Duration
	LogDir     string
}

const (
	defaultConfigPath  = "~/.config/backdeck/config.toml"
	defaultLogDir      = "~/.local/state/backdeck"
	defaultTimeoutSecs = 15
	defaultPollSecs    = 30
)

// Load locates and parses the Backdeck config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Timeout:   defaultTimeoutSecs * time.Second,
		PollEvery: defaultPollSecs * time.Second,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(defaultLogDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var parsed struct {
		Site        string `toml:"site"`
		Username    string `toml:"username"`
		CompatHost  string `toml:"compat_host"`
		TimeoutSecs int    `toml:"timeout_seconds"`
		PollSecs    int    `toml:"poll_seconds"`
		LogDir      string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Site = strings.TrimSpace(parsed.Site)
	cfg.Username = strings.TrimSpace(parsed.Username)
	cfg.CompatHost = strings.TrimSpace(parsed.CompatHost)
	if parsed.TimeoutSecs > 0 {
		cfg.Timeout = time.Duration(parsed.TimeoutSecs) * time.Second
	}
	if parsed.PollSecs > 0 {
		cfg.PollEvery = time.Duration(parsed.PollSecs) * time.Second
	}

	cfg.LogDir = strings.TrimSpace(parsed.LogDir)
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	return cfg, nil
}

// LogPath returns the path to the Backdeck debug log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/backdeck.log")
	}
	return filepath.Join(c.LogDir, "backdeck.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
