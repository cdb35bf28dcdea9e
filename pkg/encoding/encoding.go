/*
Package encoding packs 2-bit codes into 64-bit words, 32 codes per word.
Code k of word w occupies bits [2k, 2k+2), so position p lives in word
p>>5 at bit offset (p<<1)&63.
*/
package encoding

import (
	"golang.org/x/exp/constraints"

	"github.com/virus-evolution/gonucleic/pkg/alphabet"
)

// CodesPerWord is the number of 2-bit codes held by one packed word
const CodesPerWord = 32

// CeilDiv returns n/d rounded up. It is how many d-sized blocks, words or
// chunks cover n items.
func CeilDiv[T constraints.Unsigned](n, d T) T {
	return (n + d - 1) / d
}

// Words returns the number of packed words needed for n codes
func Words(n uint32) int {
	return int(CeilDiv(uint64(n), CodesPerWord))
}

// Packer accumulates 2-bit codes into words
type Packer struct {
	words []uint64
	block uint64
	n     uint32
}

// NewPacker returns a Packer with room for n codes
func NewPacker(n uint32) *Packer {
	return &Packer{words: make([]uint64, 0, Words(n))}
}

// Push appends the low two bits of c
func (p *Packer) Push(c uint64) {
	p.block |= (c & 3) << ((p.n << 1) & 63)
	p.n++
	if p.n&31 == 0 {
		p.words = append(p.words, p.block)
		p.block = 0
	}
}

// Len returns the number of codes pushed so far
func (p *Packer) Len() uint32 {
	return p.n
}

// Words flushes any partial word and returns the packed buffer. The Packer
// should not be used afterwards.
func (p *Packer) Words() []uint64 {
	if p.n&31 != 0 {
		p.words = append(p.words, p.block)
		p.block = 0
	}
	return p.words
}

// Pack encodes data with table t. It fails on the first byte t rejects, in
// which case no words are returned.
func Pack(data string, t *alphabet.Table) ([]uint64, error) {
	p := NewPacker(uint32(len(data)))
	for i := 0; i < len(data); i++ {
		c, ok := t.Lookup(data[i])
		if !ok {
			return nil, &alphabet.SymbolError{Symbol: data[i], Position: i}
		}
		p.Push(uint64(c))
	}
	return p.Words(), nil
}

// At returns the 2-bit code at physical position p
func At(words []uint64, p uint32) uint64 {
	return (words[p>>5] >> ((p << 1) & 63)) & 3
}

// Physical maps logical position i of a sequence of length n to the
// position it is stored at. Reversed views read the buffer back to front.
func Physical(i, n uint32, reverse bool) uint32 {
	if reverse {
		return n - i - 1
	}
	return i
}
