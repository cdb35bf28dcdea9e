package encoding

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virus-evolution/gonucleic/pkg/alphabet"
)

func unpack(words []uint64, n uint32) string {
	var sb strings.Builder
	for p := uint32(0); p < n; p++ {
		sb.WriteByte(alphabet.Decode(At(words, p)))
	}
	return sb.String()
}

func TestWords(t *testing.T) {
	cases := map[uint32]int{0: 0, 1: 1, 31: 1, 32: 1, 33: 2, 64: 2, 65: 3, 4294967295: 134217728}
	for n, want := range cases {
		assert.Equal(t, want, Words(n), "n = %d", n)
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, uint32(0), CeilDiv(uint32(0), 128))
	assert.Equal(t, uint32(1), CeilDiv(uint32(128), 128))
	assert.Equal(t, uint32(2), CeilDiv(uint32(129), 128))
	assert.Equal(t, uint64(33554432), CeilDiv(uint64(4294967295), 128))
	assert.Equal(t, uint8(3), CeilDiv(uint8(9), 4))
}

func TestPackLayout(t *testing.T) {
	words, err := Pack("ACGT", &alphabet.Strict)
	require.NoError(t, err)
	require.Len(t, words, 1)
	// A=0 C=1 G=2 T=3, first base in the lowest bits
	assert.Equal(t, uint64(0b11_10_01_00), words[0])
}

func TestPackWordBoundaries(t *testing.T) {
	for _, n := range []int{0, 1, 31, 32, 33, 63, 64, 65, 100} {
		data := strings.Repeat("GATTACA", 15)[:n]
		words, err := Pack(data, &alphabet.Strict)
		require.NoError(t, err)
		assert.Len(t, words, Words(uint32(n)))
		assert.Equal(t, data, unpack(words, uint32(n)))
	}
}

func TestPackInvalid(t *testing.T) {
	words, err := Pack("ACGTACGTACGTACGTACGTACGTACGTACGTACGT-", &alphabet.Strict)
	assert.Nil(t, words)
	var serr *alphabet.SymbolError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, byte('-'), serr.Symbol)
	assert.Equal(t, 36, serr.Position)
	assert.True(t, errors.Is(err, alphabet.ErrInvalidSymbol))

	words, err = Pack("ACGTACGTACGTACGTACGTACGTACGTACGTACGT-", &alphabet.Permissive)
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTACGTACGTACGTACGTACGTACGTACGTA", unpack(words, 37))
}

func TestPackerMatchesPack(t *testing.T) {
	p := NewPacker(70)
	for i := 0; i < 70; i++ {
		p.Push(uint64(i))
	}
	assert.Equal(t, uint32(70), p.Len())
	words := p.Words()
	require.Len(t, words, 3)
	for i := uint32(0); i < 70; i++ {
		assert.Equal(t, uint64(i&3), At(words, i))
	}
}

func TestPhysical(t *testing.T) {
	assert.Equal(t, uint32(3), Physical(3, 10, false))
	assert.Equal(t, uint32(6), Physical(3, 10, true))
	assert.Equal(t, uint32(9), Physical(0, 10, true))
	assert.Equal(t, uint32(0), Physical(9, 10, true))
}
