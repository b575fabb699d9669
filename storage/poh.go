// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/database"
)

// PoHStore persists each sender's nonce-chain tail and last-admitted
// nonce (§6.5 "poh/"), the witness a restarted node needs to keep
// enforcing §4.4's strictly-increasing anti-replay window without
// replaying every tick since genesis.
type PoHStore struct {
	db database.Database
}

func poHKey(sender string) []byte {
	key := make([]byte, 1+len(sender))
	key[0] = prefixPoHTail
	copy(key[1:], sender)
	return key
}

// PutTail records sender's current chain tail and last-admitted nonce.
func (s *PoHStore) PutTail(w database.KeyValueWriter, sender string, tail [32]byte, lastNonce uint64) error {
	buf := make([]byte, 40)
	copy(buf[:32], tail[:])
	binary.BigEndian.PutUint64(buf[32:], lastNonce)
	if err := w.Put(poHKey(sender), buf); err != nil {
		return fmt.Errorf("storage: put poh tail for %q: %w", sender, err)
	}
	return nil
}

// GetTail returns sender's persisted chain tail and last-admitted
// nonce, or ok=false if sender has never been observed.
func (s *PoHStore) GetTail(sender string) (tail [32]byte, lastNonce uint64, ok bool, err error) {
	has, err := s.db.Has(poHKey(sender))
	if err != nil {
		return tail, 0, false, fmt.Errorf("storage: check poh tail for %q: %w", sender, err)
	}
	if !has {
		return tail, 0, false, nil
	}
	raw, err := s.db.Get(poHKey(sender))
	if err != nil {
		return tail, 0, false, fmt.Errorf("storage: get poh tail for %q: %w", sender, err)
	}
	if len(raw) != 40 {
		return tail, 0, false, fmt.Errorf("storage: malformed poh tail for %q", sender)
	}
	copy(tail[:], raw[:32])
	lastNonce = binary.BigEndian.Uint64(raw[32:])
	return tail, lastNonce, true, nil
}
