// Package config handles loading and parsing the Backdeck configuration
// file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/backdeck/config.toml
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Missing config files are NOT an error; Backdeck works out of the box and
// the operator types the site address on the login screen instead.
//
// # TOML Format
//
// Example config.toml:
//
//	site = "192.168.30.85"
//	username = "admin"
//	compat_host = "cms.internal"
//	timeout_seconds = 15
//	poll_seconds = 30
//	log_dir = "~/.local/state/backdeck"
//
// All fields are optional. Tilde expansion is performed on paths. The
// password is deliberately not a config field; it is typed at login.
//
// # Defaults
//
//   - Config file: ~/.config/backdeck/config.toml
//   - Request timeout: 15 seconds
//   - Status poll interval: 30 seconds
//   - Log directory: ~/.local/state/backdeck
//   - Debug log: <log_dir>/backdeck.log
//
// The package is read-only and stateless: configuration is loaded once at
// startup into an immutable Config value.
package config
