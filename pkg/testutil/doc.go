// Package testutil provides fakes for the external collaborators zshkit
// drives, so orchestration can be tested without touching the host.
//
// Key components:
//   - Runner: records every command and never executes anything
//   - Packages, VCS, Shell, Bootstrapper: recording collaborator fakes
//   - Prompter: replays scripted answers
//   - NewMemFS: afero memory filesystem seeded with files
//
// Fakes record calls in exported fields; behavior is overridden through
// the optional ...Func fields.
package testutil
