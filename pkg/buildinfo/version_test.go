package buildinfo

import (
	"strings"
	"testing"
)

func TestGetStamped(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := Get().Version; got != "v1.2.3" {
		t.Errorf("Get().Version = %q", got)
	}
	if !strings.Contains(Template(), "version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "v1", Commit: "abc", Date: "2026-01-01"}.String()
	for _, want := range []string{"version: v1", "commit: abc", "built: 2026-01-01"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}
