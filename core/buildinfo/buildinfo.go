package buildinfo

import "fmt"

// Set at link time, for example:
//
//	go build -ldflags "-X 'github.com/m3rciful/summerday/core/buildinfo.Version=v0.3.0' \
//	  -X 'github.com/m3rciful/summerday/core/buildinfo.Commit=$(git rev-parse --short HEAD)'"
var (
	// Version is the release tag of the binary.
	Version = "dev"
	// Commit is the short commit hash the binary was built from.
	Commit = "local"
	// Date is the RFC3339 build timestamp.
	Date = ""
)

// String renders the build metadata on one line.
func String() string {
	if Date == "" {
		return fmt.Sprintf("%s (%s)", Version, Commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", Version, Commit, Date)
}
