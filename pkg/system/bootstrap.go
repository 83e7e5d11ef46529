package system

import (
	"context"
	"fmt"

	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/users"
)

// Bootstrapper runs the framework's own installer.
type Bootstrapper interface {
	Install(ctx context.Context, url string) error
}

// Toggles handed to the framework installer: do not start zsh when done,
// do not change the login shell, keep any existing .zshrc.
var bootstrapEnv = []string{"RUNZSH=no", "CHSH=no", "KEEP_ZSHRC=yes"}

// ScriptBootstrapper downloads the installer with curl and runs it
// unattended as Target.
type ScriptBootstrapper struct {
	Runner executor.Runner
	Target users.Identity
}

var _ Bootstrapper = (*ScriptBootstrapper)(nil)

func (b *ScriptBootstrapper) Install(ctx context.Context, url string) error {
	script := fmt.Sprintf(`sh -c "$(curl -fsSL %s)" "" --unattended`, url)
	cmd := executor.NewCommand("sh", "-c", script).WithEnv(bootstrapEnv...)
	return b.Runner.Run(ctx, cmd, b.Target)
}
