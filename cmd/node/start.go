// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the node and block until signalled to stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := openLogger()
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: open logger: %w", err))
			}
			store := openStore()
			_ = store // wired for subsystems to attach to as they come online

			if err := os.WriteFile(flagPidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644); err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: write pid file: %w", err))
			}
			defer os.Remove(flagPidFile)

			logger.Info("node started", zap.Int("pid", os.Getpid()), zap.String("db_path", flagDBPath))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			logger.Info("node stopping")
			return nil
		},
	}
}
