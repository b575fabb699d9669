// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/lightclient"
	"github.com/luxfi/bftcore/primitives"
	"github.com/spf13/cobra"
)

var (
	flagVerifyLast  uint64
	flagVerifyEpoch uint64
)

// verifyCmd replays the last N finalised headers through C6's
// linkage, validator-set-binding, and aggregate-signature checks
// (lightclient.VerifyChainLinkage) — the subset of verify_bundle a
// replayed node can check from storage/ alone, per §6.6.
func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the last N finalised headers and print the failure kind, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			hasher := primitives.NewHasher(primitives.HashBlake3)

			last, ok, err := store.Chain.LastHeight()
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: read last height: %w", err))
			}
			if !ok {
				fmt.Println("no finalised headers on file")
				return nil
			}

			set, err := store.Validators.GetSet(flagVerifyEpoch)
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: read validator set for epoch %d: %w", flagVerifyEpoch, err))
			}
			dir := header.NewDirectory(hasher, set)

			start := uint64(0)
			if last+1 > flagVerifyLast {
				start = last + 1 - flagVerifyLast
			}

			for height := start; height <= last; height++ {
				h, err := store.Chain.GetHeader(height)
				if err != nil {
					return withExitCode(exitUnclassified, fmt.Errorf("node: read header at height %d: %w", height, err))
				}
				commit, err := store.Chain.GetCommit(height)
				if err != nil {
					return withExitCode(exitUnclassified, fmt.Errorf("node: read commit at height %d: %w", height, err))
				}
				prev := header.Header{}
				if height > 0 {
					prev, err = store.Chain.GetHeader(height - 1)
					if err != nil {
						return withExitCode(exitUnclassified, fmt.Errorf("node: read header at height %d: %w", height-1, err))
					}
				}

				result := lightclient.VerifyChainLinkage(hasher, h, commit, prev, dir)
				fmt.Printf("height %d: %s\n", height, result)
				if result != lightclient.Valid {
					return withExitCode(exitConsensus, fmt.Errorf("node: height %d failed verification: %s", height, result))
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&flagVerifyLast, "last", 10, "number of most recent finalised headers to verify")
	cmd.Flags().Uint64Var(&flagVerifyEpoch, "epoch", 0, "validator-set epoch to verify against")
	return cmd
}
