// Package ui is everything zshkit shows to or asks of a person: progress
// messages, dry-run notices, the plugin listing, confirmations and the
// final summary.
package ui
