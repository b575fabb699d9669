// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Signal a running node (started with the same --pid-file) to stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(flagPidFile)
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: read pid file %s: %w", flagPidFile, err))
			}
			pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: parse pid file %s: %w", flagPidFile, err))
			}
			proc, err := os.FindProcess(pid)
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: find process %d: %w", pid, err))
			}
			if err := proc.Signal(syscall.SIGTERM); err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: signal process %d: %w", pid, err))
			}
			return nil
		},
	}
}
