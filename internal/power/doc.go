// Package power flips the machine-wide sleep-disabled setting.
//
// The setting is externally owned and persists beyond the process, which is
// exactly why the lock package reference-counts access to it. This package
// only provides the capability: an idempotent set, and a best-effort read
// for status display. On Darwin it shells out to pmset; on Linux it masks
// the systemd sleep targets. Both require root.
package power
