package version

import (
	"fmt"
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/bookingdash/internal/version.Version=...".
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: 4f2c9e1
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-03-01T09:15:00Z
	GoVersion = runtime.Version()
)

// Info is the one-line build summary logged at startup.
func Info(binary string) string {
	return fmt.Sprintf("%s %s (commit=%s, built=%s, go=%s)",
		binary, Version, Commit, BuildDate, GoVersion)
}
