// Package version exposes build-time version metadata.
package version

import "fmt"

var (
	// Version is set at build time via -ldflags.
	Version = "dev"
	// GitCommit is the commit SHA the binary was built from.
	GitCommit = "unknown"
)

// Info is the serializable version record.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
}

// Get returns the current version information.
func Get() Info {
	return Info{Version: Version, GitCommit: GitCommit}
}

func (i Info) String() string {
	return fmt.Sprintf("skillaudit %s (%s)", i.Version, i.GitCommit)
}
