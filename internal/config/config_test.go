package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site != "" || cfg.Username != "" {
		t.Fatalf("Site/Username = %q/%q, want empty defaults", cfg.Site, cfg.Username)
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.PollEvery != 30*time.Second {
		t.Fatalf("PollEvery = %v, want 30s", cfg.PollEvery)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
site = "  192.168.30.85  "
username = "  admin  "
compat_host = "cms.internal"
timeout_seconds = 5
poll_seconds = 10
log_dir = "  ~/.backdeck/logs  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site != "192.168.30.85" {
		t.Fatalf("Site = %q, want trimmed address", cfg.Site)
	}
	if cfg.Username != "admin" || cfg.CompatHost != "cms.internal" {
		t.Fatalf("Username/CompatHost = %q/%q, want admin/cms.internal", cfg.Username, cfg.CompatHost)
	}
	if cfg.Timeout != 5*time.Second || cfg.PollEvery != 10*time.Second {
		t.Fatalf("Timeout/PollEvery = %v/%v, want 5s/10s", cfg.Timeout, cfg.PollEvery)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
site = "   "
timeout_seconds = 0
log_dir = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site != "" {
		t.Fatalf("Site = %q, want empty after trim", cfg.Site)
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want 15s default", cfg.Timeout)
	}
	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`site = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/backdeck.log")) {
		t.Fatalf("LogPath = %q, want it to end with /backdeck.log", got)
	}
}
