// Package version exposes build metadata stamped in by the linker.
package version

import (
	"fmt"
	"runtime"
)

// Version, GitCommit, and BuildDate are overridden at build time with
// -ldflags; GoVersion comes from the toolchain that built the binary.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// String returns a single-line rendering suitable for log fields.
func String() string {
	return fmt.Sprintf("%s (%s, built %s, %s)", Version, GitCommit, BuildDate, GoVersion)
}
