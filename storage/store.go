// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage implements the §6.5 persisted state layout over
// github.com/luxfi/database: an append-only chain log of headers and
// commits, checkpointed validator-set roots per epoch, per-sender PoH
// nonce-chain tails, the DA shard-header index, and exported slashing
// evidence. Each subsystem gets its own byte-prefixed keyspace within
// a single database.Database, the same sub-keyspacing convention the
// teacher's VersionedDatabase/SharedMemory split uses for per-chain
// isolation within one backing store.
package storage

import (
	"encoding/binary"

	"github.com/luxfi/database"
)

// Keyspace prefixes, one byte each, one per §6.5 bullet. Kept distinct
// from primitives' domain-separation tags (§3.2): these namespace
// storage keys, not hashed content.
const (
	prefixChainHeader     byte = 0x01
	prefixChainCommit     byte = 0x02
	prefixChainLastHeight byte = 0x03
	prefixValidatorRoot   byte = 0x10
	prefixPoHTail         byte = 0x20
	prefixDAShardHeader   byte = 0x30
	prefixDAPinnerRef     byte = 0x31
	prefixEvidenceRecord  byte = 0x40
)

func heightKey(prefix byte, height uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], height)
	return key
}

func indexKey(prefix byte, height uint64, index uint32) []byte {
	key := make([]byte, 13)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:9], height)
	binary.BigEndian.PutUint32(key[9:], index)
	return key
}

func idKey(prefix byte, id [32]byte) []byte {
	key := make([]byte, 33)
	key[0] = prefix
	copy(key[1:], id[:])
	return key
}

// Store is the single entry point wiring all §6.5 substores to one
// backing database.Database, so cmd/node opens one handle and the
// substores share its batching and lifecycle.
type Store struct {
	db         database.Database
	Chain      *ChainStore
	Validators *ValidatorStore
	PoH        *PoHStore
	DA         *DAStore
	Evidence   *EvidenceStore
}

// New wires a Store over db.
func New(db database.Database) *Store {
	return &Store{
		db:         db,
		Chain:      &ChainStore{db: db},
		Validators: &ValidatorStore{db: db},
		PoH:        &PoHStore{db: db},
		DA:         &DAStore{db: db},
		Evidence:   &EvidenceStore{db: db},
	}
}

// NewBatch opens a new atomic write batch, letting a caller stage a
// header, its commit, and any PoH/DA side-effects from the same height
// in one write, per §5's transaction discipline ("a height's state
// transition commits atomically or not at all").
func (s *Store) NewBatch() database.Batch {
	return s.db.NewBatch()
}
