// Package version reports build information for the teds tools and the
// TEDS format version they read and write.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/ieee1451/teds-go/pkg/teds"
)

// Standard names the data model the tools implement.
const Standard = "IEEE 1451.0-2007"

// Build information, set with -ldflags "-X github.com/ieee1451/teds-go/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a snapshot of the build information.
type Info struct {
	Version     string `json:"version" yaml:"version"`
	Commit      string `json:"commit" yaml:"commit"`
	Date        string `json:"date" yaml:"date"`
	GoVersion   string `json:"goVersion" yaml:"goVersion"`
	Platform    string `json:"platform" yaml:"platform"`
	Standard    string `json:"standard" yaml:"standard"`
	TEDSVersion uint8  `json:"tedsVersion" yaml:"tedsVersion"`
}

// Get returns the build information. A dev build falls back to the module
// version recorded by the Go toolchain, when there is one.
func Get() Info {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return Info{
		Version:     v,
		Commit:      Commit,
		Date:        Date,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Standard:    Standard,
		TEDSVersion: teds.IdentifierVersion,
	}
}

// Pairs returns the information as labelled rows.
func (i Info) Pairs() [][2]string {
	return [][2]string{
		{"Version", i.Version},
		{"Commit", i.Commit},
		{"Built", i.Date},
		{"Go version", i.GoVersion},
		{"OS/Arch", i.Platform},
		{"Standard", i.Standard},
		{"TEDS version", fmt.Sprint(i.TEDSVersion)},
	}
}

// String returns "version (commit)".
func (i Info) String() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}
