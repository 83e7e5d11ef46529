package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/users"
)

// RunCall is one recorded command.
type RunCall struct {
	Command executor.Command
	As      string
}

// String renders the call as "account: command".
func (c RunCall) String() string {
	return c.As + ": " + c.Command.String()
}

// Runner is an executor.Runner that records commands instead of running them.
type Runner struct {
	mu sync.Mutex

	Dry     bool
	Calls   []RunCall
	Outputs []RunCall

	// RunFunc, when set, decides the result of Run.
	RunFunc func(cmd executor.Command, as users.Identity) error
	// OutputFunc, when set, answers Output. Otherwise Output returns "".
	OutputFunc func(cmd executor.Command, as users.Identity) (string, error)
}

var _ executor.Runner = (*Runner)(nil)

// Run records cmd. In dry-run mode RunFunc is not consulted.
func (r *Runner) Run(_ context.Context, cmd executor.Command, as users.Identity) error {
	r.mu.Lock()
	r.Calls = append(r.Calls, RunCall{Command: cmd, As: as.Name})
	r.mu.Unlock()
	if r.Dry || r.RunFunc == nil {
		return nil
	}
	return r.RunFunc(cmd, as)
}

// Output records cmd and returns OutputFunc's answer.
func (r *Runner) Output(_ context.Context, cmd executor.Command, as users.Identity) (string, error) {
	r.mu.Lock()
	r.Outputs = append(r.Outputs, RunCall{Command: cmd, As: as.Name})
	r.mu.Unlock()
	if r.OutputFunc == nil {
		return "", nil
	}
	return r.OutputFunc(cmd, as)
}

// DryRun reports the Dry flag.
func (r *Runner) DryRun() bool {
	return r.Dry
}

// Commands returns the recorded Run calls rendered as strings.
func (r *Runner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}

// Ran reports whether any recorded command line contains substr.
func (r *Runner) Ran(substr string) bool {
	for _, c := range r.Commands() {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}
