// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/luxfi/bftcore/primitives"
	"github.com/spf13/cobra"
)

var flagEvidenceFormat string

func evidenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Inspect and export recorded slashing evidence",
	}
	cmd.AddCommand(evidenceExportCmd())
	return cmd
}

// evidenceExportCmd emits every recorded evidence.Record, hex-encoded
// one per line, for the §6.6 evidence-export command. --format selects
// between this module's canonical Export() encoding ("native", the
// default) and ExportCBOR()'s self-describing form for external
// tooling that does not link this module.
func evidenceExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded evidence in portable form",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			hasher := primitives.NewHasher(primitives.HashBlake3)

			records, err := store.Evidence.List()
			if err != nil {
				return withExitCode(exitUnclassified, fmt.Errorf("node: list evidence: %w", err))
			}
			for _, rec := range records {
				id := rec.ID(hasher)
				var body []byte
				switch flagEvidenceFormat {
				case "cbor":
					body, err = rec.ExportCBOR()
					if err != nil {
						return withExitCode(exitUnclassified, fmt.Errorf("node: cbor-export evidence %x: %w", id, err))
					}
				case "native", "":
					body = rec.Export()
				default:
					return withExitCode(exitUnclassified, fmt.Errorf("node: unknown evidence format %q", flagEvidenceFormat))
				}
				fmt.Printf("%s %s %s\n", hex.EncodeToString(id[:]), rec.Kind, hex.EncodeToString(body))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagEvidenceFormat, "format", "native", "export encoding: native or cbor")
	return cmd
}
