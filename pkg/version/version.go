package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Version overrides the module version, e.g. -ldflags "-X .../version.Version=v1.0.0"
var Version = ""

var versionColor = color.New(color.FgGreen, color.Bold)

// Info describes the running pig binary.
type Info struct {
	Version   string
	Revision  string // VCS commit, shortened
	Modified  bool   // built from a dirty work tree
	BuildTime string
	GoVersion string
	Platform  string
}

// Get collects version information from the build info embedded by the go
// command. Version, when set, wins over the module version.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return fromBuildInfo(bi, Version)
}

func fromBuildInfo(bi *debug.BuildInfo, override string) Info {
	info := Info{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi != nil {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value
				if len(info.Revision) > 12 {
					info.Revision = info.Revision[:12]
				}
			case "vcs.time":
				info.BuildTime = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if override != "" {
		info.Version = override
	}
	return info
}

// String renders the --version output.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pig version %s", versionColor.Sprint(i.Version))
	if i.Revision != "" {
		rev := i.Revision
		if i.Modified {
			rev += "-dirty"
		}
		fmt.Fprintf(&b, " (%s)", rev)
	}
	b.WriteString("\n")
	if i.BuildTime != "" {
		fmt.Fprintf(&b, "committed %s, ", i.BuildTime)
	}
	fmt.Fprintf(&b, "%s %s", i.GoVersion, i.Platform)
	return b.String()
}
