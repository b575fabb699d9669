// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"

	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/primitives"
	"github.com/luxfi/database"
)

const prefixValidatorSet byte = 0x11

// ValidatorStore persists the checkpointed validator-set root per
// epoch (§6.5 "validators/"). header.Directory holds the live set in
// memory; this is the durable trail a restarted node replays to
// reconstruct which root was active at which epoch, and what
// light-client §4.6 set-binding checks expect historically.
type ValidatorStore struct {
	db database.Database
}

// PutRoot records root as epoch's checkpointed validator-set root.
func (s *ValidatorStore) PutRoot(w database.KeyValueWriter, epoch uint64, root [32]byte) error {
	if err := w.Put(heightKey(prefixValidatorRoot, epoch), root[:]); err != nil {
		return fmt.Errorf("storage: put validator root at epoch %d: %w", epoch, err)
	}
	return nil
}

// GetRoot returns the checkpointed root for epoch.
func (s *ValidatorStore) GetRoot(epoch uint64) ([32]byte, error) {
	raw, err := s.db.Get(heightKey(prefixValidatorRoot, epoch))
	if err != nil {
		return [32]byte{}, fmt.Errorf("storage: get validator root at epoch %d: %w", epoch, err)
	}
	if len(raw) != 32 {
		return [32]byte{}, fmt.Errorf("storage: malformed validator root at epoch %d", epoch)
	}
	var root [32]byte
	copy(root[:], raw)
	return root, nil
}

// encodeSet serialises set's entries for persistence. This is a wire
// format for storage alone, distinct from header.Set's private
// Merkle-leaf encoding: entry order here is insertion order, not the
// sorted-by-index order the Merkle root commits to.
func encodeSet(set header.Set) []byte {
	e := primitives.NewEncoder(64 * len(set.Entries))
	e.U32(uint32(len(set.Entries)))
	for _, entry := range set.Entries {
		e.U32(entry.Index)
		e.Var(entry.BLSPublicKey)
		e.Fixed32(entry.VRFPublicKey)
		e.Var([]byte(entry.Meta.Region))
		e.Var([]byte(entry.Meta.ASN))
		e.Var([]byte(entry.Meta.ClientImpl))
		if entry.Meta.HardwareAttested {
			e.U8(1)
		} else {
			e.U8(0)
		}
	}
	return e.Bytes()
}

func decodeSet(b []byte) (header.Set, error) {
	d := primitives.NewDecoder(b)
	n := d.U32()
	entries := make([]header.Entry, 0, n)
	for i := uint32(0); i < n; i++ {
		entry := header.Entry{
			Index:        d.U32(),
			BLSPublicKey: d.Var(),
			VRFPublicKey: d.Fixed32(),
		}
		entry.Meta.Region = string(d.Var())
		entry.Meta.ASN = string(d.Var())
		entry.Meta.ClientImpl = string(d.Var())
		entry.Meta.HardwareAttested = d.U8() == 1
		entries = append(entries, entry)
	}
	if err := d.Err(); err != nil {
		return header.Set{}, err
	}
	return header.Set{Entries: entries}, nil
}

// PutSet records the full validator-set snapshot active at epoch,
// alongside its checkpointed root, so a restarted operator CLI can
// report active-validator counts (§6.6) without replaying gossip.
func (s *ValidatorStore) PutSet(w database.KeyValueWriter, epoch uint64, set header.Set) error {
	if err := w.Put(heightKey(prefixValidatorSet, epoch), encodeSet(set)); err != nil {
		return fmt.Errorf("storage: put validator set at epoch %d: %w", epoch, err)
	}
	return nil
}

// GetSet returns the validator-set snapshot persisted for epoch.
func (s *ValidatorStore) GetSet(epoch uint64) (header.Set, error) {
	raw, err := s.db.Get(heightKey(prefixValidatorSet, epoch))
	if err != nil {
		return header.Set{}, fmt.Errorf("storage: get validator set at epoch %d: %w", epoch, err)
	}
	return decodeSet(raw)
}
