// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/bftcore/evidence"
	"github.com/luxfi/database"
)

const prefixEvidenceIndex byte = 0x41

// EvidenceStore persists exported slashing-evidence records (§6.5
// "evidence/"), keyed by their stable evidence.Record.ID so the same
// violation recorded twice (e.g. by two independent detectors)
// naturally dedups, plus an insertion-ordered index for the §6.6
// evidence-export command to enumerate every record on file.
type EvidenceStore struct {
	db database.Database
}

// Put records rec under id, appending id to the enumeration index if
// it is not already present.
func (s *EvidenceStore) Put(w database.KeyValueWriter, id [32]byte, rec evidence.Record) error {
	has, err := s.db.Has(idKey(prefixEvidenceRecord, id))
	if err != nil {
		return fmt.Errorf("storage: check evidence %x: %w", id, err)
	}
	if err := w.Put(idKey(prefixEvidenceRecord, id), rec.Export()); err != nil {
		return fmt.Errorf("storage: put evidence %x: %w", id, err)
	}
	if has {
		return nil
	}
	count, err := s.count()
	if err != nil {
		return err
	}
	if err := w.Put(heightKey(prefixEvidenceIndex, count), id[:]); err != nil {
		return fmt.Errorf("storage: append evidence index %d: %w", count, err)
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, count+1)
	if err := w.Put([]byte{prefixEvidenceIndex}, buf); err != nil {
		return fmt.Errorf("storage: bump evidence count: %w", err)
	}
	return nil
}

func (s *EvidenceStore) count() (uint64, error) {
	has, err := s.db.Has([]byte{prefixEvidenceIndex})
	if err != nil {
		return 0, fmt.Errorf("storage: check evidence count: %w", err)
	}
	if !has {
		return 0, nil
	}
	raw, err := s.db.Get([]byte{prefixEvidenceIndex})
	if err != nil {
		return 0, fmt.Errorf("storage: get evidence count: %w", err)
	}
	return binary.BigEndian.Uint64(raw), nil
}

// Get returns the record stored under id.
func (s *EvidenceStore) Get(id [32]byte) (evidence.Record, error) {
	raw, err := s.db.Get(idKey(prefixEvidenceRecord, id))
	if err != nil {
		return evidence.Record{}, fmt.Errorf("storage: get evidence %x: %w", id, err)
	}
	return evidence.ImportRecord(raw)
}

// List returns every evidence record on file, in the order first
// recorded, for the §6.6 evidence-export command.
func (s *EvidenceStore) List() ([]evidence.Record, error) {
	count, err := s.count()
	if err != nil {
		return nil, err
	}
	out := make([]evidence.Record, 0, count)
	for i := uint64(0); i < count; i++ {
		idRaw, err := s.db.Get(heightKey(prefixEvidenceIndex, i))
		if err != nil {
			return nil, fmt.Errorf("storage: get evidence index %d: %w", i, err)
		}
		var id [32]byte
		copy(id[:], idRaw)
		rec, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
