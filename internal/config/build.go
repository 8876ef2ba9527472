package config

// Set with -ldflags, for example:
//
//	go build -ldflags "-X wunderground/internal/config.version=1.2.3 \
//	    -X wunderground/internal/config.commit=$(git rev-parse --short HEAD)" ./cmd/wu
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// NewBuildInfo returns the linker-injected build metadata.
func NewBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}
}
