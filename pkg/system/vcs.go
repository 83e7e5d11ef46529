package system

import (
	"context"
	"fmt"

	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/users"
)

// VCS fetches plugin sources.
type VCS interface {
	// Clone makes a shallow clone of url into dir.
	Clone(ctx context.Context, url, dir string, depth int) error
	// Pull fast-forwards an existing checkout.
	Pull(ctx context.Context, dir string) error
}

// Git is the git-backed VCS. Checkouts are owned by Owner.
type Git struct {
	Runner executor.Runner
	Owner  users.Identity
}

var _ VCS = (*Git)(nil)

func (g *Git) Clone(ctx context.Context, url, dir string, depth int) error {
	if depth < 1 {
		depth = 1
	}
	cmd := executor.NewCommand("git", "clone", fmt.Sprintf("--depth=%d", depth), url, dir)
	return g.Runner.Run(ctx, cmd, g.Owner)
}

func (g *Git) Pull(ctx context.Context, dir string) error {
	return g.Runner.Run(ctx, executor.NewCommand("git", "-C", dir, "pull", "--ff-only"), g.Owner)
}
