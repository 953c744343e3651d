package version

import (
	"runtime/debug"
	"strings"
)

const defaultModule = "pixelpainter"

// buildVersion is set via -ldflags "-X pixelpainter/internal/version.buildVersion=...".
var buildVersion = ""

// Current returns the best available version string.
func Current() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "v0.0.0-unknown"
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		return v
	}
	if v := revision(info); v != "" {
		return "v0.0.0-" + v
	}
	return "v0.0.0-unknown"
}

// Module returns the module path from build info when available.
func Module() string {
	info, ok := debug.ReadBuildInfo()
	if ok {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			return path
		}
	}
	return defaultModule
}

func revision(info *debug.BuildInfo) string {
	var rev string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "+dirty"
	}
	return rev
}
