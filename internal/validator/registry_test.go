// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"testing"

	"github.com/luxfi/bftcore/primitives"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterLookupRemove(t *testing.T) {
	kp, err := primitives.GenerateEd25519()
	require.NoError(t, err)

	r := NewRegistry()
	_, ok := r.Lookup(1)
	require.False(t, ok)

	r.Register(1, Endpoint{NodeID: ids.NodeID{1}, Address: "127.0.0.1:9001", EnvelopeKey: kp.Public})
	require.Equal(t, 1, r.Len())

	ep, ok := r.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "127.0.0.1:9001", ep.Address)

	r.Remove(1)
	_, ok = r.Lookup(1)
	require.False(t, ok)
}

func TestEndpointDisplayIDIsStableAndNonEmpty(t *testing.T) {
	kp, err := primitives.GenerateEd25519()
	require.NoError(t, err)
	ep := Endpoint{EnvelopeKey: kp.Public}
	require.NotEmpty(t, ep.DisplayID())
	require.Equal(t, ep.DisplayID(), ep.DisplayID())
}

func TestRegistryMustLookupError(t *testing.T) {
	r := NewRegistry()
	_, err := r.MustLookup(9)
	require.Error(t, err)
}

func TestRegistryIndices(t *testing.T) {
	r := NewRegistry()
	r.Register(0, Endpoint{})
	r.Register(2, Endpoint{})
	idx := r.Indices()
	require.ElementsMatch(t, []uint32{0, 2}, idx)
}
