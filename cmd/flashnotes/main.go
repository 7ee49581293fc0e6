// Package main implements the flashnotes command: an HTTP API, a one-shot
// summarize command, and an MCP stdio server that turn study notes into
// flashcards.
package main

import (
	"fmt"
	"os"
)

// Version information (set at build time with -ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	setVersion(version, commit, date)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
