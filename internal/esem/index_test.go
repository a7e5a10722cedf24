package esem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveIndicesV1PacksTwoBytesPerIndex(t *testing.T) {
	h := make([]byte, 36) // 2*V for v1
	// idx[0] = h[0] + ((h[1]>>6)<<8) = 0x12 + ((0xC0>>6)<<8) = 0x12 + (3<<8) = 0x312
	h[0] = 0x12
	h[1] = 0xC0

	idx, err := DeriveIndices(V1, h)
	require.NoError(t, err)
	require.Equal(t, 18, len(idx))
	require.Equal(t, 0x312, idx[0])
	for _, i := range idx {
		require.True(t, i >= 0 && i < 1024)
	}
}

func TestDeriveIndicesV2ConsumesOneBytePerIndex(t *testing.T) {
	h := make([]byte, 40)
	h[0] = 0xFF // >>1 = 0x7F = 127, the max valid v2 index

	idx, err := DeriveIndices(V2, h)
	require.NoError(t, err)
	require.Equal(t, 40, len(idx))
	require.Equal(t, 127, idx[0])
	for _, i := range idx {
		require.True(t, i >= 0 && i < 128)
	}
}

func TestDeriveIndicesRejectsShortInputV1(t *testing.T) {
	_, err := DeriveIndices(V1, make([]byte, 10))
	require.Error(t, err)
}

func TestDeriveIndicesRejectsShortInputV2(t *testing.T) {
	_, err := DeriveIndices(V2, make([]byte, 5))
	require.Error(t, err)
}

func TestDeriveIndicesIsDeterministic(t *testing.T) {
	h := bytes40()
	idx1, err := DeriveIndices(V2, h)
	require.NoError(t, err)
	idx2, err := DeriveIndices(V2, h)
	require.NoError(t, err)
	require.Equal(t, idx1, idx2)
}

func bytes40() []byte {
	b := make([]byte, 40)
	for i := range b {
		b[i] = byte(i * 7)
	}
	return b
}
