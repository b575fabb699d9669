// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command node is the §6.6 operator surface: start/stop, health,
// verify --last N, and evidence export, built the way the teacher's
// cmd/consensus composes cobra subcommands around a shared root.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeForErr(err))
	}
}
