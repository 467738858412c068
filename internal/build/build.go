// Package build holds build-time information for the define tool.
package build

// Version is the application version.
// It defaults to "dev" and is overwritten by linker flags on release builds.
var Version = "dev"
