package quality

import (
	"math"

	"github.com/virus-evolution/gonucleic/pkg/encoding"
)

// BlockSize is the number of scores that share one set of levels
const BlockSize = 128

const levelsPerBlock = 4

// Quantized approximates a quality string at 2 bits per base. Every block
// of BlockSize scores is reduced to four levels, packed most significant
// first into one word of Levels, and each score is replaced by the index of
// its nearest level. Indices has the same layout as a packed nucleotide
// buffer and stores 3 - index, so that code c selects byte c of the block's
// level word.
type Quantized struct {
	Indices []uint64
	Levels  []uint32
	N       uint32
}

// Quantize encodes q. q is not validated.
func Quantize(q string) *Quantized {
	n := uint32(len(q))
	out := &Quantized{
		Levels: make([]uint32, 0, encoding.CeilDiv(n, BlockSize)),
		N:      n,
	}
	p := encoding.NewPacker(n)
	block := make([]uint8, 0, BlockSize)
	for i := 0; i < len(q); i += BlockSize {
		j := i + BlockSize
		if j > len(q) {
			j = len(q)
		}
		block = block[:0]
		for k := i; k < j; k++ {
			block = append(block, q[k]-Offset)
		}
		levels := BlockLevels(block)
		for _, v := range block {
			p.Push(uint64(levelsPerBlock - 1 - nearest(v, levels)))
		}
		out.Levels = append(out.Levels, packLevels(levels))
	}
	out.Indices = p.Words()
	return out
}

// BlockLevels derives the four representative levels of one block of
// scores from its minimum, maximum, mean and mode. The range on the side of
// the mode where the mean falls is split in thirds, the other in halves.
func BlockLevels(block []uint8) [4]uint8 {
	var levels [4]uint8
	if len(block) == 0 {
		return levels
	}

	var (
		counts   [256]uint32
		lo, hi   uint8 = math.MaxUint8, 0
		mode     uint8
		modeFreq uint32
		sum      float64
	)
	for _, v := range block {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += float64(v)
		counts[v]++
		// first value to strictly overtake the running best wins ties
		if counts[v] > modeFreq {
			mode = v
			modeFreq = counts[v]
		}
	}
	mean := sum / float64(len(block))

	m := float64(mode)
	if mean < m {
		step := float64(mode-lo) / 3
		levels[0] = round(m - 2*step)
		levels[1] = round(m - step)
		levels[2] = mode
		levels[3] = round(m + float64(hi-mode)/2)
	} else {
		levels[0] = round(m - float64(mode-lo)/2)
		levels[1] = mode
		step := float64(hi-mode) / 3
		levels[2] = round(m + step)
		levels[3] = round(m + 2*step)
	}
	return levels
}

func round(f float64) uint8 {
	return uint8(math.Round(f))
}

// nearest returns the index of the level closest to v. Ties keep the
// lower index because only a strict improvement replaces the best so far.
func nearest(v uint8, levels [4]uint8) int {
	best := 0
	for l := 1; l < len(levels); l++ {
		if absDiff(v, levels[l]) < absDiff(v, levels[best]) {
			best = l
		}
	}
	return best
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func packLevels(levels [4]uint8) uint32 {
	var w uint32
	for _, l := range levels {
		w = w<<8 | uint32(l)
	}
	return w
}

func unpackLevels(w uint32) [4]uint8 {
	return [4]uint8{uint8(w >> 24), uint8(w >> 16), uint8(w >> 8), uint8(w)}
}

func (s *Quantized) Score(p uint32) uint8 {
	code := encoding.At(s.Indices, p)
	return uint8(s.Levels[p/BlockSize] >> (code << 3))
}

func (s *Quantized) Len() int {
	return int(s.N)
}

func (s *Quantized) Clone() Scores {
	c := &Quantized{
		Indices: make([]uint64, len(s.Indices)),
		Levels:  make([]uint32, len(s.Levels)),
		N:       s.N,
	}
	copy(c.Indices, s.Indices)
	copy(c.Levels, s.Levels)
	return c
}

// LevelsAt returns the four levels of the block holding physical position p
func (s *Quantized) LevelsAt(p uint32) [4]uint8 {
	return unpackLevels(s.Levels[p/BlockSize])
}

// MeanAbsError returns the mean absolute difference between the scores of
// the Phred+33 string q and the stored scores s, compared position by
// position over the shorter of the two
func MeanAbsError(q string, s Scores) float64 {
	n := len(q)
	if s.Len() < n {
		n = s.Len()
	}
	if n == 0 {
		return 0
	}
	var sum uint64
	for p := 0; p < n; p++ {
		sum += uint64(absDiff(q[p]-Offset, s.Score(uint32(p))))
	}
	return float64(sum) / float64(n)
}
