// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/luxfi/bftcore/internal/utils/version"
	"github.com/spf13/cobra"
)

// buildCommit is overridden at build time via:
//
//	go build -ldflags "-X main.buildCommit=$(git rev-parse HEAD)"
var buildCommit = "unknown"

var nodeVersion = version.Application{
	Name:    "bftcore-node",
	Version: version.Semantic{Major: 0, Minor: 1, Patch: 0},
	Commit:  buildCommit,
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the node build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s (commit %s)\n", nodeVersion, nodeVersion.Commit)
			return nil
		},
	}
}
