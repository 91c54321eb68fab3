package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/ieee1451/teds-go/pkg/teds"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version is empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
	if info.TEDSVersion != teds.IdentifierVersion {
		t.Errorf("TEDSVersion = %d, want %d", info.TEDSVersion, teds.IdentifierVersion)
	}
}

func TestGetUsesInjectedVersion(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := Get().Version; got != "v1.2.3" {
		t.Errorf("Version = %q, want v1.2.3", got)
	}
}

func TestInfoPairs(t *testing.T) {
	info := Info{Version: "v1.0.0", Commit: "abc123", Standard: Standard, TEDSVersion: 1}
	pairs := info.Pairs()
	if len(pairs) != 7 {
		t.Fatalf("len(pairs) = %d, want 7", len(pairs))
	}
	if pairs[5] != [2]string{"Standard", "IEEE 1451.0-2007"} {
		t.Errorf("pairs[5] = %v", pairs[5])
	}
	if pairs[6][1] != "1" {
		t.Errorf("TEDS version = %q, want 1", pairs[6][1])
	}
	if !strings.Contains(info.String(), "abc123") {
		t.Errorf("String() = %q", info.String())
	}
}
