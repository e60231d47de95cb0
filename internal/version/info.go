package version

// Build metadata, overridden at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)
