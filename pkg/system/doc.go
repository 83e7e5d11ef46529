// Package system wraps the external tools zshkit drives: the platform
// package manager, git, the framework bootstrap installer and the
// login-shell facility.
//
// Each collaborator is an interface with one method per idiom so the
// orchestration packages can be tested without touching the host. The
// exec-backed implementations route every command through an
// executor.Runner and therefore honor dry-run.
package system
