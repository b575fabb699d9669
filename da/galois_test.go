// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGFMulDivRoundTrip(t *testing.T) {
	a, b := gf(1234), gf(5678)
	product := gfMul(a, b)
	require.Equal(t, a, gfDiv(product, b))
	require.Equal(t, b, gfDiv(product, a))
}

func TestGFInverse(t *testing.T) {
	for _, v := range []gf{1, 2, 3, 255, 65534} {
		require.Equal(t, gf(1), gfMul(v, gfInverse(v)))
	}
}

func TestGFAddIsSelfInverse(t *testing.T) {
	a, b := gf(42), gf(99)
	require.Equal(t, a, gfSub(gfAdd(a, b), b))
}

func TestGFPowMatchesRepeatedMul(t *testing.T) {
	a := gf(7)
	want := gf(1)
	for i := 0; i < 5; i++ {
		want = gfMul(want, a)
	}
	require.Equal(t, want, gfPow(a, 5))
}

func TestGFPolyEvalConstant(t *testing.T) {
	require.Equal(t, gf(9), gfPolyEval([]gf{9}, gf(123)))
}

func TestGFInterpolateReconstructsPolynomial(t *testing.T) {
	poly := []gf{3, 7, 11} // 3 + 7x + 11x^2
	xs := []gf{gfExpOf(0), gfExpOf(1), gfExpOf(2)}
	ys := make([]gf, len(xs))
	for i, x := range xs {
		ys[i] = gfPolyEval(poly, x)
	}
	got := gfInterpolate(xs, ys)
	for i, c := range poly {
		require.Equal(t, c, got[i])
	}
}
