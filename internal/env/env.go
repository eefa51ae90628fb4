package env

const AppName = "reext"

// Set at build time via -ldflags "-X github.com/ostafen/reext/internal/env.Version=..."
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
