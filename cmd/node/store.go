// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/luxfi/bftcore/internal/log"
	"github.com/luxfi/bftcore/storage"
	"github.com/luxfi/database/memdb"
)

// openStore wires the §6.5 persisted state layout. flagDBPath is
// accepted for forward compatibility with a disk-backed driver; this
// build always runs against memdb, since the retrieved pack carries
// no fetchable disk-backed github.com/luxfi/database driver (only
// memdb and the manager package appear anywhere in it) — see
// DESIGN.md.
func openStore() *storage.Store {
	return storage.New(memdb.New())
}

func openLogger() (log.Logger, error) {
	return log.NewProduction(flagLogLevel)
}
