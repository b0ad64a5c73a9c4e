package main

import (
	"os"

	"github.com/RevCBH/smux/internal/cli"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := cli.New()
	app.SetVersion(version, commit, date)
	os.Exit(app.Run())
}
