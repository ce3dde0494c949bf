// Package app provides the orchestration layer for the Backdeck
// application.
//
// Run is the composition root: it loads configuration and preferences,
// builds the file-backed logger, creates the API client and the shared
// state store, launches the background status poller, and starts the TUI,
// blocking until the user exits or the context cancels.
//
// The poller only polls while the client holds a session; before login
// there is nothing to ask the site for. Poll failures are recorded in the
// store and logged, never fatal, and consecutive failures back the cadence
// off exponentially. Login, logout, and every admin action flow through
// the UI layer directly; the poller's only job is keeping the status
// report fresh.
package app
