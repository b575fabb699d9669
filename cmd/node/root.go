// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"
)

var (
	flagDBPath   string
	flagLogLevel string
	flagPidFile  string
)

var rootCmd = &cobra.Command{
	Use:   "node",
	Short: "Operator CLI for a header-only BFT substrate node",
	Long: `node starts and inspects a single validator of the header-only
BFT substrate: IBFT consensus over signed headers, a PoH tick service,
Reed-Solomon data availability, and a light-client verifier, with a
zmq-backed gossip transport and BPCI frame relay underneath.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "persisted state directory (this build always uses an in-memory store)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "trace, debug, info, warn, error, or crit")
	rootCmd.PersistentFlags().StringVar(&flagPidFile, "pid-file", "bftcore-node.pid", "file start writes its PID to, stop reads it from")

	rootCmd.AddCommand(
		startCmd(),
		stopCmd(),
		healthCmd(),
		verifyCmd(),
		evidenceCmd(),
		versionCmd(),
	)
}
