package main

import (
	"fmt"
	"os"

	"github.com/Ohseho81/autus-engine/internal/cli"
	"github.com/joho/godotenv"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Missing .env is fine; flags and config files cover everything.
	_ = godotenv.Load()

	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
