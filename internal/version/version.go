// Package version holds build identity, populated via -ldflags at release
// time.
package version

var (
	// Version is the current tool version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the full build identity for -version output.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
