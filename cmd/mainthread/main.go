// mainthread reconstructs main-thread task trees from Chrome traces.
//
// Usage:
//
//	mainthread analyze trace.json [more.json...] [--id TRC-xxxxxxxx]
//	mainthread tasks trace.json [--depth N] [--min-ms X]
//	mainthread import trace.json [--label L]
//	mainthread list | remove --id ID | status
package main

import (
	"os"

	"github.com/runnerr0/mainthread/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// go-flags already printed the error.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
