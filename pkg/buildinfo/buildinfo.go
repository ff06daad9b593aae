// Package buildinfo exposes the version stamped into a netviz binary.
//
// Release builds set the variables with ldflags:
//
//	pkg=github.com/matzehuels/netviz/pkg/buildinfo
//	go build -ldflags "-X $pkg.Version=v0.3.0 -X $pkg.Commit=$(git rev-parse --short HEAD) \
//	    -X $pkg.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/netviz
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v0.3.0"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // UTC build timestamp
)

// String returns the build information as three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + Version + " (" + Commit + ", built " + Date + ")\n"
}
