// The variables in this file are populated at link time via go's -ldflags option.
// DO NOT RENAME THEM unless the build scripts are updated to match.

package bininfo

var (
	// Version is the SemVer version of the binary.
	// Git commit is appended, if available, separated by a plus sign [+].
	Version = "v0.0.0"

	// BuildTime is the time at which the application was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
