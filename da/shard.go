// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import "github.com/luxfi/bftcore/primitives"

// ShardHeader identifies one erasure-coded shard of a submission at a
// given block height (§3.7).
type ShardHeader struct {
	Index       uint32
	Size        uint32
	BlockHeight uint64
	ContentHash [32]byte
}

func (h ShardHeader) encode() []byte {
	e := primitives.NewEncoder(48)
	e.U32(h.Index)
	e.U32(h.Size)
	e.U64(h.BlockHeight)
	e.Fixed32(h.ContentHash)
	return e.Bytes()
}

// Hash computes shard_hash_j = H(0x14 || shard_header_j).
func (h ShardHeader) Hash(hasher *primitives.Hasher) [32]byte {
	return hasher.Sum(primitives.DomainDAShardHead, h.encode())
}

// Encode serialises h for persistence, the same canonical layout
// Hash domain-tags.
func (h ShardHeader) Encode() []byte {
	return h.encode()
}

// DecodeShardHeader parses bytes produced by Encode.
func DecodeShardHeader(b []byte) (ShardHeader, error) {
	d := primitives.NewDecoder(b)
	h := ShardHeader{
		Index:       d.U32(),
		Size:        d.U32(),
		BlockHeight: d.U64(),
		ContentHash: d.Fixed32(),
	}
	if err := d.Err(); err != nil {
		return ShardHeader{}, err
	}
	return h, nil
}

// Shard pairs a header with the erasure-coded bytes it describes.
type Shard struct {
	Header ShardHeader
	Bytes  []byte
}

// Root Merkleises shard hashes, in index order, into a block's da_root
// (§3.7: "DA root for the block is the Merkle root over [shard_hash_j]
// across all submissions at that height").
func Root(hasher *primitives.Hasher, headers []ShardHeader) [32]byte {
	leaves := make([][]byte, len(headers))
	for i, h := range headers {
		hash := h.Hash(hasher)
		leaves[i] = append([]byte{}, hash[:]...)
	}
	return hasher.MerkleRoot(leaves)
}

// Opening is a Merkle inclusion proof that a shard's header is part of
// a block's da_root, the artifact a challenge response carries back
// (§4.6 step 5: "the response's Merkle opening verifies against
// header.da_root").
type Opening struct {
	Header ShardHeader
	Proof  primitives.Proof
}

// Verify reports whether o's header hashes into root via its proof.
func (o Opening) Verify(hasher *primitives.Hasher, root [32]byte) bool {
	hash := o.Header.Hash(hasher)
	return hasher.MerkleVerify(root, hash[:], o.Proof)
}

// Prove builds the Merkle opening for headers[index] against the set
// headers was Merkleised from.
func Prove(hasher *primitives.Hasher, headers []ShardHeader, index int) (Opening, bool) {
	leaves := make([][]byte, len(headers))
	for i, h := range headers {
		hash := h.Hash(hasher)
		leaves[i] = append([]byte{}, hash[:]...)
	}
	proof, ok := hasher.MerkleProve(leaves, index)
	if !ok {
		return Opening{}, false
	}
	return Opening{Header: headers[index], Proof: proof}, true
}
