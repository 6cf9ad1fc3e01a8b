// Package version reports how the bindgen binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/teranos/bindgen/version.Version=...".
var (
	Version    = "dev"
	CommitHash = ""
)

// Info describes the running binary.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash,omitempty"`
	Modified   bool   `json:"modified,omitempty"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the build information. Without ldflags the commit comes from
// the VCS stamp the go command records.
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if info.CommitHash != "" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.CommitHash = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	return info
}

// Short returns the first seven characters of the commit, or "unknown".
func (i Info) Short() string {
	switch {
	case i.CommitHash == "":
		return "unknown"
	case len(i.CommitHash) >= 7:
		return i.CommitHash[:7]
	default:
		return i.CommitHash
	}
}

func (i Info) String() string {
	s := fmt.Sprintf("bindgen %s (commit %s)", i.Version, i.Short())
	if i.Modified {
		s += " with local changes"
	}
	return s
}
