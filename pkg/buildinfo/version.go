// Package buildinfo holds version information stamped at link time:
//
//	go build -ldflags "\
//	    -X github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/ttm
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns "version (commit)".
func Short() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
