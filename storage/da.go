// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/bftcore/da"
	"github.com/luxfi/database"
)

const prefixDAShardCount byte = 0x32

// DAStore persists the shard-header index and pinner reference for
// every submission height (§6.5 "da/"): enough for a light client or
// challenger to reconstruct da_root and know where to fetch shard
// bytes from, without storing the shard payloads themselves.
type DAStore struct {
	db database.Database
}

// PutShardHeader records headers[index] for height, and bumps the
// height's shard count if index extends it.
func (s *DAStore) PutShardHeader(w database.KeyValueWriter, height uint64, index uint32, h da.ShardHeader) error {
	if err := w.Put(indexKey(prefixDAShardHeader, height, index), h.Encode()); err != nil {
		return fmt.Errorf("storage: put shard header at height %d index %d: %w", height, index, err)
	}
	count, err := s.shardCount(height)
	if err != nil {
		return err
	}
	if index+1 > count {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, index+1)
		if err := w.Put(heightKey(prefixDAShardCount, height), buf); err != nil {
			return fmt.Errorf("storage: bump shard count at height %d: %w", height, err)
		}
	}
	return nil
}

func (s *DAStore) shardCount(height uint64) (uint32, error) {
	has, err := s.db.Has(heightKey(prefixDAShardCount, height))
	if err != nil {
		return 0, fmt.Errorf("storage: check shard count at height %d: %w", height, err)
	}
	if !has {
		return 0, nil
	}
	raw, err := s.db.Get(heightKey(prefixDAShardCount, height))
	if err != nil {
		return 0, fmt.Errorf("storage: get shard count at height %d: %w", height, err)
	}
	return binary.BigEndian.Uint32(raw), nil
}

// ListShardHeaders returns every shard header recorded for height, in
// index order.
func (s *DAStore) ListShardHeaders(height uint64) ([]da.ShardHeader, error) {
	count, err := s.shardCount(height)
	if err != nil {
		return nil, err
	}
	headers := make([]da.ShardHeader, 0, count)
	for i := uint32(0); i < count; i++ {
		raw, err := s.db.Get(indexKey(prefixDAShardHeader, height, i))
		if err != nil {
			return nil, fmt.Errorf("storage: get shard header at height %d index %d: %w", height, i, err)
		}
		h, err := da.DecodeShardHeader(raw)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, nil
}

// PutPinnerRef records the opaque reference (e.g. a pinning service
// request ID) for where height's shard bytes were pinned.
func (s *DAStore) PutPinnerRef(w database.KeyValueWriter, height uint64, ref []byte) error {
	if err := w.Put(heightKey(prefixDAPinnerRef, height), ref); err != nil {
		return fmt.Errorf("storage: put pinner ref at height %d: %w", height, err)
	}
	return nil
}

// GetPinnerRef returns height's pinner reference.
func (s *DAStore) GetPinnerRef(height uint64) ([]byte, error) {
	raw, err := s.db.Get(heightKey(prefixDAPinnerRef, height))
	if err != nil {
		return nil, fmt.Errorf("storage: get pinner ref at height %d: %w", height, err)
	}
	return raw, nil
}
