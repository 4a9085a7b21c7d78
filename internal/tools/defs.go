// Package tools checks the host for the external commands the install
// pipeline shells out to, so a missing C compiler surfaces before a
// source build fails halfway through.
package tools

import "nimfox/internal/platform"

// Definition describes one host command the pipeline may invoke.
// Executables lists interchangeable binaries; the first one found on
// PATH wins. An empty VersionArgs means presence alone satisfies the
// check.
type Definition struct {
	Name        string
	Executables []string
	VersionArgs []string
	Minimum     string
	Purpose     string
}

var ccDefinition = Definition{
	Name:        "cc",
	Executables: []string{"cc", "gcc", "clang"},
	VersionArgs: []string{"--version"},
	Purpose:     "compiles the csources bootstrap compiler during source builds",
}

var shDefinition = Definition{
	Name:        "sh",
	Executables: []string{"sh"},
	Purpose:     "runs the upstream build script during source builds",
}

var tarDefinition = Definition{
	Name:        "tar",
	Executables: []string{"tar"},
	VersionArgs: []string{"--version"},
	// -J appeared in GNU tar 1.22; every bsdtar release understands it.
	Minimum: "1.22",
	Purpose: "unpacks .tar.xz source and nightly archives",
}

var xzDefinition = Definition{
	Name:        "xz",
	Executables: []string{"xz"},
	VersionArgs: []string{"--version"},
	Purpose:     "decompresses .tar.xz archives on behalf of GNU tar",
}

// Definitions returns the host commands relevant on the given platform.
// Windows runs build scripts through cmd and ships a bsdtar that handles
// xz itself, so only the compiler and tar appear there.
func Definitions(os platform.OS) []Definition {
	if os == platform.Windows {
		return []Definition{ccDefinition, tarDefinition}
	}
	return []Definition{ccDefinition, shDefinition, tarDefinition, xzDefinition}
}
