package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the pycheck CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own colour.
// The pre-release suffix stays uncoloured. color.NoColor switches it off.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// String returns the full version line: "pycheck <version> (<commit>, <date>)".
func String() string {
	var sb strings.Builder
	sb.WriteString("pycheck ")
	sb.WriteString(Colored())

	var meta []string
	if GitCommit != "" {
		meta = append(meta, GitCommit)
	}
	if BuildDate != "" {
		meta = append(meta, BuildDate)
	}
	if len(meta) > 0 {
		sb.WriteString(" (" + strings.Join(meta, ", ") + ")")
	}
	return sb.String()
}
