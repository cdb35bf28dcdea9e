/*
Package nucleic provides NucleicAcid, a packed, immutable nucleotide
sequence with optional per-base quality scores.

Bases are stored at 2 bits each. Reverse complementing a NucleicAcid only
flips a flag: every accessor remaps positions through the flag, so the
packed buffers are never rewritten.
*/
package nucleic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/virus-evolution/gonucleic/pkg/alphabet"
	"github.com/virus-evolution/gonucleic/pkg/encoding"
	"github.com/virus-evolution/gonucleic/pkg/quality"
)

// All asks InflateData and InflateQuality for everything from the start
// position to the end of the sequence
const All = math.MaxUint32

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMissingQuality  = errors.New("no quality scores")
	ErrLengthMismatch  = errors.New("sequence and quality lengths differ")
)

// NucleicAcid is one packed sequence. The zero value is an empty sequence
// without quality.
type NucleicAcid struct {
	id      uint32
	name    string
	data    []uint64
	quality quality.Scores // nil if none was supplied
	length  uint32
	reverse bool
}

func (n *NucleicAcid) ID() uint32 {
	return n.id
}

func (n *NucleicAcid) Name() string {
	return n.name
}

// Len returns the number of bases
func (n *NucleicAcid) Len() uint32 {
	return n.length
}

func (n *NucleicAcid) HasQuality() bool {
	return n.quality != nil
}

// QualityMode reports how the quality scores are stored. It is only
// meaningful if HasQuality is true.
func (n *NucleicAcid) QualityMode() quality.Mode {
	if _, ok := n.quality.(*quality.Quantized); ok {
		return quality.ModeQuantized
	}
	return quality.ModePlain
}

// IsReverseComplement reports whether the record is currently viewed as
// its reverse complement
func (n *NucleicAcid) IsReverseComplement() bool {
	return n.reverse
}

// ReverseAndComplement toggles between the forward and the reverse
// complement view. It is not safe to call concurrently on the same record.
func (n *NucleicAcid) ReverseAndComplement() {
	n.reverse = !n.reverse
}

func (n *NucleicAcid) physical(i uint32) uint32 {
	return encoding.Physical(i, n.length, n.reverse)
}

func (n *NucleicAcid) code(i uint32) uint64 {
	c := encoding.At(n.data, n.physical(i))
	if n.reverse {
		c = alphabet.Complement(c)
	}
	return c
}

// Code returns the 2-bit code (A=0, C=1, G=2, T=3) of base i in the current
// orientation
func (n *NucleicAcid) Code(i uint32) (uint8, error) {
	if i >= n.length {
		return 0, fmt.Errorf("code %d of %d: %w", i, n.length, ErrIndexOutOfRange)
	}
	return uint8(n.code(i)), nil
}

// Score returns the Phred score of base i in the current orientation
func (n *NucleicAcid) Score(i uint32) (uint8, error) {
	if n.quality == nil {
		return 0, fmt.Errorf("score %d of %q: %w", i, n.name, ErrMissingQuality)
	}
	if i >= n.length {
		return 0, fmt.Errorf("score %d of %d: %w", i, n.length, ErrIndexOutOfRange)
	}
	return n.quality.Score(n.physical(i)), nil
}

// clamp returns how many positions from i onwards can be read, at most l
func (n *NucleicAcid) clamp(i, l uint32) uint32 {
	if rest := n.length - i; l > rest {
		return rest
	}
	return l
}

// InflateData decodes up to l bases starting at i. It returns "" if i is
// past the end, and stops at the end of the sequence.
func (n *NucleicAcid) InflateData(i, l uint32) string {
	if i >= n.length {
		return ""
	}
	l = n.clamp(i, l)

	var sb strings.Builder
	sb.Grow(int(l))
	for end := i + l; i < end; i++ {
		sb.WriteByte(alphabet.Decode(n.code(i)))
	}
	return sb.String()
}

// InflateQuality is InflateData for the Phred+33 quality string. It returns
// "" when the record has no quality.
func (n *NucleicAcid) InflateQuality(i, l uint32) string {
	if n.quality == nil || i >= n.length {
		return ""
	}
	l = n.clamp(i, l)

	var sb strings.Builder
	sb.Grow(int(l))
	for end := i + l; i < end; i++ {
		sb.WriteByte(n.quality.Score(n.physical(i)) + quality.Offset)
	}
	return sb.String()
}

// Clone returns a deep copy that shares no buffers with n. The copy keeps
// n's id and orientation.
func (n *NucleicAcid) Clone() *NucleicAcid {
	c := *n
	c.data = make([]uint64, len(n.data))
	copy(c.data, n.data)
	if n.quality != nil {
		c.quality = n.quality.Clone()
	}
	return &c
}

// Footprint returns the number of bytes held by the packed buffers
func (n *NucleicAcid) Footprint() int {
	size := 8 * len(n.data)
	switch q := n.quality.(type) {
	case quality.Plain:
		size += len(q)
	case *quality.Quantized:
		size += 8*len(q.Indices) + 4*len(q.Levels)
	}
	return size
}
