package esem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPRFIsDeterministic(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, AESKeySize)
	p1, err := NewPRF(key)
	require.NoError(t, err)
	p2, err := NewPRF(key)
	require.NoError(t, err)

	o1 := p1.Output32(7)
	o2 := p2.Output32(7)
	require.Equal(t, o1, o2)
}

func TestPRFOutputsDisjointAcrossIndices(t *testing.T) {
	key := bytes.Repeat([]byte{0x17}, AESKeySize)
	p, err := NewPRF(key)
	require.NoError(t, err)

	o0 := p.Output32(0)
	o1 := p.Output32(1)
	require.NotEqual(t, o0, o1)
}

func TestPRFRejectsWrongKeyLength(t *testing.T) {
	_, err := NewPRF(make([]byte, 16))
	require.Error(t, err)
}

func TestScalarAtReducesModQ(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, AESKeySize)
	p, err := NewPRF(key)
	require.NoError(t, err)

	s, err := p.ScalarAt(1)
	require.NoError(t, err)
	require.Len(t, s.Bytes(), ScalarSize)
}
