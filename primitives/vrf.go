// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primitives

import (
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"
)

// ECVRF-EDWARDS25519-SHA512-TAI (RFC 9381 §5.4.1.1, cofactor 8,
// try-and-increment hash-to-curve). Gates PoH tick seeds (§3.6) and
// IBFT leader selection (§4.3). Built directly on filippo.io/
// edwards25519's constant-time scalar/point arithmetic — the teacher's
// go.mod carries this as an indirect dependency of golang.org/x/crypto's
// ed25519 implementation; this is its first direct use in the repo.

const (
	vrfSuite   = 0x04 // ECVRF-EDWARDS25519-SHA512-TAI suite string
	vrfCLen    = 16   // challenge length in bytes
	vrfProofLen = 32 + vrfCLen + 32
)

var (
	ErrVRFInvalidKey   = errors.New("primitives: invalid vrf key")
	ErrVRFInvalidProof = errors.New("primitives: malformed vrf proof")
	ErrVRFNoPoint      = errors.New("primitives: hash-to-curve exhausted candidate space")
)

// VRFKeyPair holds a VRF secret/public key pair. The secret is a
// 32-byte Ed25519-style seed; the public key is the compressed point
// x*B where x is derived from the seed by SHA-512 clamping, exactly
// as Ed25519 key expansion does.
type VRFKeyPair struct {
	Secret [32]byte // seed
	Public [32]byte // compressed point
}

// GenerateVRF derives a VRF key pair from a 32-byte seed.
func GenerateVRF(seed [32]byte) (VRFKeyPair, error) {
	x, _, err := vrfExpand(seed)
	if err != nil {
		return VRFKeyPair{}, err
	}
	var pub [32]byte
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(x).Bytes())
	return VRFKeyPair{Secret: seed, Public: pub}, nil
}

// vrfExpand performs the Ed25519-style SHA-512 key expansion: clamp
// the low half into scalar x, keep the high half as the nonce prefix.
func vrfExpand(seed [32]byte) (*edwards25519.Scalar, []byte, error) {
	h := sha512.Sum512(seed[:])
	clamped := make([]byte, 32)
	copy(clamped, h[:32])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64
	x, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, nil, ErrVRFInvalidKey
	}
	return x, h[32:64], nil
}

// VRFProve computes (pi, beta) = VRF.prove(sk, alpha) per §3.6/§4.3.
func VRFProve(kp VRFKeyPair, alpha []byte) (pi, beta []byte, err error) {
	x, noncePrefix, err := vrfExpand(kp.Secret)
	if err != nil {
		return nil, nil, err
	}
	h, err := vrfHashToCurve(kp.Public[:], alpha)
	if err != nil {
		return nil, nil, err
	}
	gamma := new(edwards25519.Point).ScalarMult(x, h)

	k := vrfNonce(noncePrefix, h.Bytes())
	kB := new(edwards25519.Point).ScalarBaseMult(k)
	kH := new(edwards25519.Point).ScalarMult(k, h)

	c := vrfHashPoints(h, gamma, kB, kH)
	cScalar := vrfChallengeScalar(c)

	// s = k + c*x mod L
	s := edwards25519.NewScalar().Multiply(cScalar, x)
	s.Add(s, k)

	pi = make([]byte, 0, vrfProofLen)
	pi = append(pi, gamma.Bytes()...)
	pi = append(pi, c...)
	pi = append(pi, s.Bytes()...)

	beta = vrfProofToHash(gamma)
	return pi, beta, nil
}

// VRFVerify checks pi against pk and alpha, returning (beta, true) on
// success or (nil, false) on any failure — never an error, per §4.1.
func VRFVerify(pk [32]byte, alpha, pi []byte) ([]byte, bool) {
	if len(pi) != vrfProofLen {
		return nil, false
	}
	gammaBytes := pi[:32]
	c := pi[32 : 32+vrfCLen]
	sBytes := pi[32+vrfCLen:]

	gamma, err := new(edwards25519.Point).SetBytes(gammaBytes)
	if err != nil {
		return nil, false
	}
	sPadded := make([]byte, 32)
	copy(sPadded, sBytes)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sPadded)
	if err != nil {
		return nil, false
	}
	y, err := new(edwards25519.Point).SetBytes(pk[:])
	if err != nil {
		return nil, false
	}
	cScalar := vrfChallengeScalar(c)

	h, err := vrfHashToCurve(pk[:], alpha)
	if err != nil {
		return nil, false
	}

	// U = s*B - c*Y
	sB := new(edwards25519.Point).ScalarBaseMult(s)
	cY := new(edwards25519.Point).ScalarMult(cScalar, y)
	u := new(edwards25519.Point).Subtract(sB, cY)

	// V = s*H - c*Gamma
	sH := new(edwards25519.Point).ScalarMult(s, h)
	cGamma := new(edwards25519.Point).ScalarMult(cScalar, gamma)
	v := new(edwards25519.Point).Subtract(sH, cGamma)

	cPrime := vrfHashPoints(h, gamma, u, v)
	if !bytesEqual(cPrime, c) {
		return nil, false
	}
	return vrfProofToHash(gamma), true
}

func vrfChallengeScalar(c []byte) *edwards25519.Scalar {
	padded := make([]byte, 32)
	copy(padded, c)
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(padded)
	if s == nil {
		// Truncated challenges are always < 2^128 < L; SetCanonicalBytes
		// only fails on a non-canonical encoding, which vrfHashPoints's
		// truncation never produces.
		s = edwards25519.NewScalar()
	}
	return s
}

// vrfHashToCurve implements ECVRF_hash_to_curve_try_and_increment: hash
// candidate strings with an incrementing counter until one decodes to a
// valid, non-identity curve point, then clear the small cofactor.
func vrfHashToCurve(pkBytes, alpha []byte) (*edwards25519.Point, error) {
	for ctr := 0; ctr < 256; ctr++ {
		h := sha512.New()
		h.Write([]byte{vrfSuite, 0x01})
		h.Write(pkBytes)
		h.Write(alpha)
		h.Write([]byte{byte(ctr)})
		sum := h.Sum(nil)

		candidate := make([]byte, 32)
		copy(candidate, sum[:32])
		candidate[31] &= 127 // clear sign bit, try-and-increment convention

		p, err := new(edwards25519.Point).SetBytes(candidate)
		if err != nil {
			continue
		}
		// Clear the cofactor (8) to land in the prime-order subgroup.
		eight := edwards25519.NewScalar()
		eightBytes := make([]byte, 32)
		eightBytes[0] = 8
		eight, _ = eight.SetCanonicalBytes(eightBytes)
		cleared := new(edwards25519.Point).ScalarMult(eight, p)
		if cleared.Equal(edwards25519.NewIdentityPoint()) == 1 {
			continue
		}
		return cleared, nil
	}
	return nil, ErrVRFNoPoint
}

// vrfNonce derives the per-proof nonce k deterministically from the
// Ed25519-style secret nonce prefix and the hashed point H, matching
// RFC 9381's "ECVRF_nonce_generation_RFC8032" construction.
func vrfNonce(noncePrefix, hBytes []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(noncePrefix)
	h.Write(hBytes)
	sum := h.Sum(nil)
	k, _ := edwards25519.NewScalar().SetUniformBytes(sum)
	return k
}

// vrfHashPoints implements ECVRF_hash_points: SHA-512 over the four
// encoded points, truncated to vrfCLen bytes for the challenge.
func vrfHashPoints(p1, p2, p3, p4 *edwards25519.Point) []byte {
	h := sha512.New()
	h.Write([]byte{vrfSuite, 0x02})
	h.Write(p1.Bytes())
	h.Write(p2.Bytes())
	h.Write(p3.Bytes())
	h.Write(p4.Bytes())
	sum := h.Sum(nil)
	return sum[:vrfCLen]
}

// vrfProofToHash implements ECVRF_proof_to_hash: beta = Hash(suite ||
// 0x03 || cofactor*Gamma).
func vrfProofToHash(gamma *edwards25519.Point) []byte {
	eight := edwards25519.NewScalar()
	eightBytes := make([]byte, 32)
	eightBytes[0] = 8
	eight, _ = eight.SetCanonicalBytes(eightBytes)
	cleared := new(edwards25519.Point).ScalarMult(eight, gamma)

	h := sha512.New()
	h.Write([]byte{vrfSuite, 0x03})
	h.Write(cleared.Bytes())
	sum := h.Sum(nil)
	return sum[:32]
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
