package version

// Version is the current version of warren.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/warrenlab/warren/internal/version.Version=1.2.3"
// The default value indicates a development build.
var Version = "dev"

// GetVersion returns the current version of the application.
func GetVersion() string {
	return Version
}
