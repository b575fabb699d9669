// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package da implements the Reed-Solomon data-availability engine of
// §4.5 (C5): chunking a block's payload into erasure-coded shards,
// deriving each shard's domain-tagged header and the block's da_root,
// and sampling/recovering shards for availability challenges. The
// finite-field arithmetic below has no counterpart anywhere else in
// the teacher's dependency stack or the rest of the retrieved pack; it
// is written directly against GF(2^16) rather than reached for a
// library, which is the one place in this repo where stdlib-only is
// the faithful choice (see DESIGN.md).
package da

// gfOrder is the number of non-zero elements in GF(2^16).
const gfOrder = 65535

// gfPoly is the irreducible polynomial x^16 + x^12 + x^3 + x + 1 used
// to reduce products back into the field.
const gfPoly = 0x1100B

// gfGenerator is a primitive element of GF(2^16); its powers enumerate
// every non-zero field element exactly once.
const gfGenerator = 2

// gf is a single GF(2^16) field element.
type gf uint16

var (
	gfExpTable [gfOrder * 2]gf
	gfLogTable [gfOrder + 1]uint32
)

func init() {
	x := gf(1)
	for i := 0; i < gfOrder; i++ {
		gfExpTable[i] = x
		gfLogTable[x] = uint32(i)
		x = gfMulNoTable(x, gfGenerator)
	}
	for i := gfOrder; i < gfOrder*2; i++ {
		gfExpTable[i] = gfExpTable[i-gfOrder]
	}
}

// gfMulNoTable multiplies two elements by carry-less polynomial
// multiplication followed by reduction mod gfPoly. It exists only to
// bootstrap the log/antilog tables in init; every other multiply in
// this package goes through gfMul.
func gfMulNoTable(a, b gf) gf {
	var product uint32
	x, y := uint32(a), uint32(b)
	for y > 0 {
		if y&1 != 0 {
			product ^= x
		}
		x <<= 1
		if x&0x10000 != 0 {
			x ^= gfPoly
		}
		y >>= 1
	}
	return gf(product)
}

// gfAdd and gfSub coincide in characteristic-2 fields: both are XOR.
func gfAdd(a, b gf) gf { return a ^ b }
func gfSub(a, b gf) gf { return a ^ b }

// gfMul multiplies via log/antilog lookup, the standard GF(2^m)
// technique once the tables are built.
func gfMul(a, b gf) gf {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[(gfLogTable[a]+gfLogTable[b])%gfOrder]
}

// gfDiv divides a by b; b must be non-zero.
func gfDiv(a, b gf) gf {
	if a == 0 {
		return 0
	}
	if b == 0 {
		panic("da: division by zero field element")
	}
	diff := (int(gfLogTable[a]) - int(gfLogTable[b])) % gfOrder
	if diff < 0 {
		diff += gfOrder
	}
	return gfExpTable[diff]
}

// gfInverse returns a's multiplicative inverse.
func gfInverse(a gf) gf {
	if a == 0 {
		panic("da: zero has no inverse")
	}
	return gfExpTable[gfOrder-int(gfLogTable[a])]
}

// gfExpOf returns gfGenerator^n, reducing n modulo the field's
// multiplicative order so any evaluation-point index is safe to pass.
func gfExpOf(n int) gf {
	m := ((n % gfOrder) + gfOrder) % gfOrder
	return gfExpTable[m]
}

// gfPow raises a to the n-th power.
func gfPow(a gf, n int) gf {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	e := (int(gfLogTable[a]) * n) % gfOrder
	if e < 0 {
		e += gfOrder
	}
	return gfExpTable[e]
}

// gfPolyEval evaluates poly (low-degree-first coefficients) at x via
// Horner's method.
func gfPolyEval(poly []gf, x gf) gf {
	if len(poly) == 0 {
		return 0
	}
	out := poly[len(poly)-1]
	for i := len(poly) - 2; i >= 0; i-- {
		out = gfAdd(gfMul(out, x), poly[i])
	}
	return out
}

// gfPolyMul multiplies two polynomials given as coefficient slices,
// low-degree first.
func gfPolyMul(a, b []gf) []gf {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]gf, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			out[i+j] = gfAdd(out[i+j], gfMul(ai, bj))
		}
	}
	return out
}

// gfPolyAdd adds two polynomials, zero-extending the shorter one.
func gfPolyAdd(a, b []gf) []gf {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]gf, n)
	for i := range out {
		var av, bv gf
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = gfAdd(av, bv)
	}
	return out
}

// gfPolyFromRoots builds the monic polynomial whose roots are exactly
// the given points, via repeated multiplication by (x - root).
func gfPolyFromRoots(roots []gf) []gf {
	poly := []gf{1}
	for _, r := range roots {
		poly = gfPolyMul(poly, []gf{gfSub(0, r), 1})
	}
	return poly
}

// gfInterpolate returns the unique lowest-degree polynomial passing
// through the given (x, y) points via Lagrange interpolation. xs must
// contain no duplicates; the shard-recovery caller is responsible for
// that invariant since duplicate evaluation points can never arise
// from distinct shard indices.
func gfInterpolate(xs, ys []gf) []gf {
	if len(xs) != len(ys) {
		panic("da: interpolation point count mismatch")
	}
	result := make([]gf, len(xs))
	for i, xi := range xs {
		basis := []gf{1}
		denom := gf(1)
		for j, xj := range xs {
			if i == j {
				continue
			}
			basis = gfPolyMul(basis, []gf{gfSub(0, xj), 1})
			denom = gfMul(denom, gfSub(xi, xj))
		}
		scale := gfDiv(ys[i], denom)
		for k, c := range basis {
			if k < len(result) {
				result[k] = gfAdd(result[k], gfMul(c, scale))
			}
		}
	}
	return result
}
