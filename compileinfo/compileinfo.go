package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

// BuildInfo captures the VCS state that the Go toolchain recorded in the
// running binary.
type BuildInfo struct {
	Main      string
	GoVersion string
	Revision  string
	BuildTime string
	Dirty     bool
}

// Fetch reads the build metadata embedded in the binary. Fields stay empty
// when the binary was built outside version control.
func Fetch() BuildInfo {
	out := BuildInfo{}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Main = info.Path
	out.GoVersion = info.GoVersion
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.BuildTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

func (b BuildInfo) Describe() string {
	rev := b.Revision
	if rev == "" {
		rev = "unknown revision"
	}

	desc := fmt.Sprintf("%s built with %s from %s", b.Main, b.GoVersion, rev)
	if b.BuildTime != "" {
		desc += " at " + b.BuildTime
	}
	if b.Dirty {
		desc += " (with uncommitted changes)"
	}

	return desc
}

// LogToStderr writes the build description to standard error, keeping
// standard output clean for data.
func LogToStderr() {
	fmt.Fprintln(os.Stderr, Fetch().Describe())
}
