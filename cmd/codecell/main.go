// Command codecell is a terminal notebook that sends code cells to an
// execution backend over a WebSocket.
package main

import (
	"os"

	"github.com/iw2rmb/codecell"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	SetVersion(codecell.BuildString(version, commit, date))
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
