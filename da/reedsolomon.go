// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import "fmt"

// Errors returned by Encoder and RecoverShards.
var (
	ErrInvalidConfig     = fmt.Errorf("da: invalid shard configuration")
	ErrShardSizeMismatch = fmt.Errorf("da: input shard sizes are not uniform")
	ErrEmptyInput        = fmt.Errorf("da: empty input data")
	ErrShardCount        = fmt.Errorf("da: shard count mismatch")
	ErrTooFewShards      = fmt.Errorf("da: insufficient shards for reconstruction")
)

// MaxShards bounds total shard count to the field's order, since every
// shard needs a distinct evaluation point in GF(2^16).
const MaxShards = gfOrder

// Encoder performs systematic Reed-Solomon encoding over GF(2^16) in
// evaluation form: per symbol column, the k data shards are the values
// of a degree-(k-1) polynomial at the field elements a^0..a^(k-1), and
// each of the n output shards is that polynomial evaluated at a
// distinct field element a^i. The first k outputs are therefore the
// data shards themselves and the remaining m are parity. Recovery
// needs any k of the n evaluations (§4.5's "any k successful responses
// reconstruct the chunk").
type Encoder struct {
	dataShards   int
	parityShards int
	totalShards  int
	evalPoints   []gf
}

// NewEncoder returns an Encoder for k data shards and m parity shards.
func NewEncoder(dataShards, parityShards int) (*Encoder, error) {
	if dataShards <= 0 || parityShards <= 0 {
		return nil, fmt.Errorf("%w: dataShards=%d parityShards=%d", ErrInvalidConfig, dataShards, parityShards)
	}
	total := dataShards + parityShards
	if total > MaxShards {
		return nil, fmt.Errorf("%w: total shards %d exceeds %d", ErrInvalidConfig, total, MaxShards)
	}
	points := make([]gf, total)
	for i := range points {
		points[i] = gfExpOf(i)
	}
	return &Encoder{dataShards: dataShards, parityShards: parityShards, totalShards: total, evalPoints: points}, nil
}

// DataShards reports k.
func (enc *Encoder) DataShards() int { return enc.dataShards }

// ParityShards reports m.
func (enc *Encoder) ParityShards() int { return enc.parityShards }

// TotalShards reports k+m.
func (enc *Encoder) TotalShards() int { return enc.totalShards }

// Encode takes k equal-length data shards and returns k+m output
// shards, each the degree-(k-1) polynomial interpolated through the
// data shards evaluated at a distinct field element (enc.evalPoints):
// the first k outputs equal the data shards and the last m are parity.
// Each pair of bytes in a shard forms one GF(2^16) symbol; odd-length
// shards are treated as zero-padded by one byte for the trailing symbol.
func (enc *Encoder) Encode(data [][]byte) ([][]byte, error) {
	if len(data) != enc.dataShards {
		return nil, fmt.Errorf("%w: got %d data shards, want %d", ErrShardCount, len(data), enc.dataShards)
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrEmptyInput
	}
	shardSize := len(data[0])
	for i, d := range data {
		if len(d) != shardSize {
			return nil, fmt.Errorf("%w: shard %d has size %d, shard 0 has %d", ErrShardSizeMismatch, i, len(d), shardSize)
		}
	}

	symbolSize := shardSize
	if symbolSize%2 != 0 {
		symbolSize++
	}
	numSymbols := symbolSize / 2

	out := make([][]byte, enc.totalShards)
	for i := range out {
		out[i] = make([]byte, symbolSize)
	}

	xs := enc.evalPoints[:enc.dataShards]
	ys := make([]gf, enc.dataShards)
	for col := 0; col < numSymbols; col++ {
		off := col * 2
		for i, d := range data {
			ys[i] = symbolAt(d, off)
		}
		poly := gfInterpolate(xs, ys)
		for si, pt := range enc.evalPoints {
			writeSymbol(out[si], off, gfPolyEval(poly, pt))
		}
	}
	return out, nil
}

// EncodeChunk splits chunk into k equal shards (zero-padding the
// last), then encodes it. This is the entry point a block producer
// calls per §4.5's "the block's payload is chunked... and the chunks
// are erasure-coded".
func (enc *Encoder) EncodeChunk(chunk []byte) ([][]byte, error) {
	if len(chunk) == 0 {
		return nil, ErrEmptyInput
	}
	shardSize := (len(chunk) + enc.dataShards - 1) / enc.dataShards
	if shardSize%2 != 0 {
		shardSize++
	}
	shards := make([][]byte, enc.dataShards)
	for i := range shards {
		shards[i] = make([]byte, shardSize)
		start := i * shardSize
		if start >= len(chunk) {
			continue
		}
		end := start + shardSize
		if end > len(chunk) {
			end = len(chunk)
		}
		copy(shards[i], chunk[start:end])
	}
	return enc.Encode(shards)
}

// VerifyParity re-interpolates the data polynomial from the first k
// shards and checks every remaining shard matches the expected
// evaluation. It reports a mismatch as (false, nil) rather than an
// error; only malformed input (wrong shard count) is an error.
func (enc *Encoder) VerifyParity(shards [][]byte) (bool, error) {
	if len(shards) != enc.totalShards {
		return false, fmt.Errorf("%w: got %d shards, want %d", ErrShardCount, len(shards), enc.totalShards)
	}
	if len(shards[0]) == 0 {
		return false, ErrEmptyInput
	}
	symbolSize := len(shards[0])
	if symbolSize%2 != 0 {
		symbolSize++
	}
	numSymbols := symbolSize / 2

	for col := 0; col < numSymbols; col++ {
		off := col * 2
		xs := make([]gf, enc.dataShards)
		ys := make([]gf, enc.dataShards)
		for i := 0; i < enc.dataShards; i++ {
			xs[i] = enc.evalPoints[i]
			ys[i] = symbolAt(shards[i], off)
		}
		poly := gfInterpolate(xs, ys)
		for si := enc.dataShards; si < enc.totalShards; si++ {
			if gfPolyEval(poly, enc.evalPoints[si]) != symbolAt(shards[si], off) {
				return false, nil
			}
		}
	}
	return true, nil
}

// RecoverShards reconstructs all k+m shards from any k available
// ones, identified by their original indices in [0, k+m). It is the
// light client's and the sampler's recovery path when enough samples
// succeed (§4.5's "recovery: any k successful responses reconstruct
// the chunk").
func RecoverShards(available [][]byte, indices []int, dataShards, parityShards int) ([][]byte, error) {
	if len(available) != len(indices) {
		return nil, fmt.Errorf("%w: data/indices length mismatch", ErrShardCount)
	}
	if len(available) < dataShards {
		return nil, fmt.Errorf("%w: have %d shards, need %d", ErrTooFewShards, len(available), dataShards)
	}

	shardSize := 0
	for _, d := range available {
		if len(d) > 0 {
			shardSize = len(d)
			break
		}
	}
	if shardSize == 0 {
		return nil, ErrEmptyInput
	}
	symbolSize := shardSize
	if symbolSize%2 != 0 {
		symbolSize++
	}
	numSymbols := symbolSize / 2
	total := dataShards + parityShards

	n := dataShards
	xs := make([]gf, n)
	for i := 0; i < n; i++ {
		xs[i] = gfExpOf(indices[i])
	}

	out := make([][]byte, total)
	for i := range out {
		out[i] = make([]byte, symbolSize)
	}

	ys := make([]gf, n)
	for col := 0; col < numSymbols; col++ {
		off := col * 2
		for i := 0; i < n; i++ {
			ys[i] = symbolAt(available[i], off)
		}
		poly := gfInterpolate(xs, ys)
		for si := 0; si < total; si++ {
			writeSymbol(out[si], off, gfPolyEval(poly, gfExpOf(si)))
		}
	}
	return out, nil
}

func symbolAt(shard []byte, off int) gf {
	var hi, lo byte
	if off < len(shard) {
		hi = shard[off]
	}
	if off+1 < len(shard) {
		lo = shard[off+1]
	}
	return gf(uint16(hi)<<8 | uint16(lo))
}

func writeSymbol(shard []byte, off int, v gf) {
	shard[off] = byte(v >> 8)
	if off+1 < len(shard) {
		shard[off+1] = byte(v & 0xFF)
	}
}
