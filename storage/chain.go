// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/database"
)

// ChainStore is the append-only header+commit log (§6.5 "chain/"):
// one entry per finalised height, never rewritten.
type ChainStore struct {
	db database.Database
}

// PutHeight writes h and its finalising commit at h.Height, and
// advances the last-finalised-height pointer, all through w so a
// caller can fold this into a larger atomic batch alongside
// validator, PoH, and DA side-effects for the same height (§5).
func (s *ChainStore) PutHeight(w database.KeyValueWriter, h header.Header, commit ibft.Commit) error {
	if err := w.Put(heightKey(prefixChainHeader, h.Height), h.Encode()); err != nil {
		return fmt.Errorf("storage: put header at height %d: %w", h.Height, err)
	}
	if err := w.Put(heightKey(prefixChainCommit, h.Height), commit.Encode()); err != nil {
		return fmt.Errorf("storage: put commit at height %d: %w", h.Height, err)
	}
	last := make([]byte, 8)
	binary.BigEndian.PutUint64(last, h.Height)
	if err := w.Put([]byte{prefixChainLastHeight}, last); err != nil {
		return fmt.Errorf("storage: advance last height to %d: %w", h.Height, err)
	}
	return nil
}

// GetHeader returns the header finalised at height.
func (s *ChainStore) GetHeader(height uint64) (header.Header, error) {
	raw, err := s.db.Get(heightKey(prefixChainHeader, height))
	if err != nil {
		return header.Header{}, fmt.Errorf("storage: get header at height %d: %w", height, err)
	}
	return header.Decode(raw)
}

// GetCommit returns the quorum commit that finalised height.
func (s *ChainStore) GetCommit(height uint64) (ibft.Commit, error) {
	raw, err := s.db.Get(heightKey(prefixChainCommit, height))
	if err != nil {
		return ibft.Commit{}, fmt.Errorf("storage: get commit at height %d: %w", height, err)
	}
	return ibft.DecodeCommit(raw)
}

// LastHeight returns the most recently finalised height, or ok=false
// if the chain log is empty.
func (s *ChainStore) LastHeight() (height uint64, ok bool, err error) {
	has, err := s.db.Has([]byte{prefixChainLastHeight})
	if err != nil {
		return 0, false, fmt.Errorf("storage: check last height: %w", err)
	}
	if !has {
		return 0, false, nil
	}
	raw, err := s.db.Get([]byte{prefixChainLastHeight})
	if err != nil {
		return 0, false, fmt.Errorf("storage: get last height: %w", err)
	}
	return binary.BigEndian.Uint64(raw), true, nil
}
