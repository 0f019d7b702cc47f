// Package version reports the build identity of the chatbasket binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags at build time:
//
//	go build -ldflags "-X github.com/soyeahso/chatbasket/internal/version.Version=1.0.0
//	  -X github.com/soyeahso/chatbasket/internal/version.Commit=abc123
//	  -X github.com/soyeahso/chatbasket/internal/version.Date=2026-01-01"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info returns a formatted version string. When no commit was set at link
// time, the VCS revision recorded by the Go toolchain is used instead.
func Info() string {
	commit, date := Commit, Date
	if commit == "unknown" {
		if rev, when, ok := vcsInfo(); ok {
			commit, date = rev, when
		}
	}
	return fmt.Sprintf("chatbasket %s (commit: %s, built: %s, %s/%s)",
		Version, short(commit), date, runtime.GOOS, runtime.GOARCH)
}

func vcsInfo() (rev, when string, ok bool) {
	bi, ok := readBuildInfo()
	if !ok {
		return "", "", false
	}
	when = Date
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			when = s.Value
		}
	}
	return rev, when, rev != ""
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
