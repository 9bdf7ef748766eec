// Package buildinfo carries version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/recordkeeper/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/dmitrijs2005/recordkeeper/internal/buildinfo.buildDate=$(date -u +%F) \
//	  -X github.com/dmitrijs2005/recordkeeper/internal/buildinfo.buildCommit=$(git rev-parse --short HEAD)" \
//	  ./cmd/recordkeeper
package buildinfo

import (
	"fmt"
	"io"
)

const notAvailable = "N/A"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// PrintBuildData writes the version banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", orNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(buildCommit))
}
