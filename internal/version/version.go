package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/zshkit/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/zshkit/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/zshkit/internal/version.Date={{.Date}}
)

// String is the one-line version banner.
func String() string {
	return "zshkit " + Version + " (" + Commit + ", " + Date + ")"
}
