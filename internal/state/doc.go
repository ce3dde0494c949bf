// Package state provides the thread-safe snapshot store shared by the
// background status poller and the UI.
//
// The Store follows a producer-consumer pattern: the poller is the single
// writer, the UI refresh loop reads snapshots at its own cadence. Updates
// with an error keep the previous data and record the failure, so the UI
// always has the most recent successful status report to display while
// showing that polling is degraded. Two consecutive failures mark the
// site offline.
//
// Both Update and Snapshot copy the status slice defensively; snapshots
// are safe to hold across renders without racing the poller.
package state
