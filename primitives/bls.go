// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primitives

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// BLS12-381 minimal-signature-size aggregation: public keys live in
// G2 (96-byte compressed), signatures in G1 (48-byte compressed) as
// required by §3.5 for the commit object. Grounded on the pack's only
// real blst wiring (wyf-ACCEPT-eth2030/pkg/crypto/bls_blst_adapter.go),
// which uses the inverse "MinPk" assignment for Ethereum; this core
// flips the curve assignment to match spec.md's minimal-sig commit.

// blsDST is the domain separation tag for minimal-signature BLS, per
// the draft-irtf-cfrg-bls-signature ciphersuite naming convention.
var blsDST = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_POP_")

const (
	// BLSPublicKeySize is the compressed G2 public key size.
	BLSPublicKeySize = 96
	// BLSSignatureSize is the compressed G1 signature size, matching
	// §3.5's 48-byte commit signature field.
	BLSSignatureSize = 48
	// BLSSecretKeySize is the serialized scalar size.
	BLSSecretKeySize = 32
)

var (
	errBLSShortIKM    = errors.New("primitives: bls ikm must be >= 32 bytes")
	errBLSKeyGen      = errors.New("primitives: bls keygen failed")
	errBLSBadSecret   = errors.New("primitives: invalid bls secret key bytes")
	errBLSSignFailed  = errors.New("primitives: bls sign failed")
	errBLSNoSigs      = errors.New("primitives: no bls signatures to aggregate")
	errBLSAggFailed   = errors.New("primitives: bls signature aggregation failed")
	errBLSDuplicateOrUnknownKey = errors.New("primitives: duplicate or unknown bls public key in aggregate set")
)

// BLSKeyPair holds a generated minimal-sig BLS key.
type BLSKeyPair struct {
	Public []byte // compressed G2, 96 bytes
	Secret []byte // serialized scalar, 32 bytes
}

// GenerateBLS derives a key pair from ikm (>= 32 bytes of key material).
func GenerateBLS(ikm []byte) (BLSKeyPair, error) {
	if len(ikm) < 32 {
		return BLSKeyPair{}, errBLSShortIKM
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return BLSKeyPair{}, errBLSKeyGen
	}
	pk := new(blst.P2Affine).From(sk)
	return BLSKeyPair{
		Public: pk.Compress(),
		Secret: sk.Serialize(),
	}, nil
}

// BLSSign signs msg (the header hash, per §3.5) with a serialized
// secret key, producing a compressed G1 signature.
func BLSSign(secret, msg []byte) ([]byte, error) {
	if len(secret) != BLSSecretKeySize {
		return nil, errBLSBadSecret
	}
	sk := new(blst.SecretKey).Deserialize(secret)
	if sk == nil {
		return nil, errBLSBadSecret
	}
	sig := new(blst.P1Affine).Sign(sk, msg, blsDST)
	if sig == nil {
		return nil, errBLSSignFailed
	}
	return sig.Compress(), nil
}

// BLSVerify checks a single signature. Never panics; malformed input
// is simply "not valid".
func BLSVerify(pubkey, msg, sig []byte) bool {
	if len(pubkey) == 0 || len(sig) == 0 {
		return false
	}
	pk := new(blst.P2Affine).Uncompress(pubkey)
	if pk == nil {
		return false
	}
	s := new(blst.P1Affine).Uncompress(sig)
	if s == nil {
		return false
	}
	return s.Verify(true, pk, true, msg, blsDST)
}

// BLSAggregate combines per-validator G1 signatures (over the *same*
// header hash, as every COMMIT signs header_hash) into one compressed
// aggregate signature (§3.5's 48-byte commit.sig field).
func BLSAggregate(sigs [][]byte) ([]byte, error) {
	if len(sigs) == 0 {
		return nil, errBLSNoSigs
	}
	agg := new(blst.P1Aggregate)
	if !agg.AggregateCompressed(sigs, true) {
		return nil, errBLSAggFailed
	}
	return agg.ToAffine().Compress(), nil
}

// BLSFastAggregateVerify checks an aggregate signature where every
// selected validator signed the identical message (the header hash).
// This is the hot path §6 point 3 of lightclient.verify_bundle calls.
// pubkeys must contain no duplicates and every key must belong to the
// validator set the caller already bound via the bitmap — the
// "every aggregate rejects duplicate or out-of-set public keys"
// contract of §4.1 is enforced by the caller (lightclient), not here,
// since only the caller knows the active set.
func BLSFastAggregateVerify(pubkeys [][]byte, msg, sig []byte) bool {
	n := len(pubkeys)
	if n == 0 || len(sig) == 0 {
		return false
	}
	s := new(blst.P1Affine).Uncompress(sig)
	if s == nil {
		return false
	}
	pks := make([]*blst.P2Affine, n)
	for i, pkBytes := range pubkeys {
		pks[i] = new(blst.P2Affine).Uncompress(pkBytes)
		if pks[i] == nil {
			return false
		}
	}
	return s.FastAggregateVerify(true, pks, msg, blsDST)
}

// BLSAggregatePublicKeys sums the given G2 public keys, rejecting a
// nil/malformed element. Duplicate-key and out-of-set rejection is the
// caller's responsibility (it owns the validator directory); this
// purely does the curve arithmetic.
func BLSAggregatePublicKeys(pubkeys [][]byte) ([]byte, error) {
	if len(pubkeys) == 0 {
		return nil, errBLSDuplicateOrUnknownKey
	}
	agg := new(blst.P2Aggregate)
	if !agg.AggregateCompressed(pubkeys, true) {
		return nil, errBLSDuplicateOrUnknownKey
	}
	return agg.ToAffine().Compress(), nil
}
