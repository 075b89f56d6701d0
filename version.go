// Package codecell is a terminal notebook of code cells. Each cell is a
// line-oriented text buffer driven by a key dispatcher and exported as plain
// text to an execution backend.
//
// The editing core lives in package buffer and the terminal component in
// package editor; cmd/codecell is the program.
package codecell

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release version in SemVer form, without a leading v.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag is Version as a git tag.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// BuildString formats the --version line. An empty or "dev" version, which
// is what untagged builds get from ldflags, falls back to the embedded
// release version.
func BuildString(version, commit, date string) string {
	if version == "" || version == "dev" {
		version = Version() + "-dev"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
