// Command profilerag answers questions about a collection of LinkedIn-style
// profiles.
package main

import (
	"os"

	"github.com/custodia-labs/profilerag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/cli"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := file.LoadDotEnv(); err != nil {
		logger.Warn("load .env: %v", err)
	}

	cli.SetVersion(version)
	cli.SetFactory(&wiring{})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
