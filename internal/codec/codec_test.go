// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/luxfi/bftcore/header"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrapRoundTrip(t *testing.T) {
	buf := Wrap(CurrentVersion, []byte("payload"))
	v, payload, err := Unwrap(buf)
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, v)
	require.Equal(t, []byte("payload"), payload)
}

func TestUnwrapRejectsShortBuffer(t *testing.T) {
	_, _, err := Unwrap([]byte{0})
	require.Error(t, err)
}

func TestMarshalUnmarshalHeaderRoundTrip(t *testing.T) {
	h := header.Genesis([32]byte{9})
	buf := MarshalCurrent(h)
	got, err := Unmarshal(buf, header.Decode)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestUnmarshalRejectsFutureVersion(t *testing.T) {
	h := header.Genesis([32]byte{9})
	buf := Wrap(Version(1), h.Encode())
	_, err := Unmarshal(buf, header.Decode)
	require.Error(t, err)
}
