// Package executor runs external commands on behalf of an account.
//
// Every side-effecting command zshkit issues goes through an Executor. It
// decides whether the command runs directly or through sudo for another
// account, and in dry-run mode it only reports what would have run.
// Read-only queries use Output, which runs even in dry-run so that later
// steps can report accurately.
package executor
