/*
Package quality stores per-base Phred quality scores, either verbatim
(Plain) or quantized to four levels per 128-base block (Quantized).
Input is Phred+33 ASCII, so '!' is a score of zero.
*/
package quality

import (
	"errors"
	"fmt"
)

// Offset is the ASCII value of a zero score
const Offset = '!'

// MaxScore is the largest score a printable Phred+33 byte can carry ('~')
const MaxScore = '~' - Offset

// ErrInvalidQuality is matched by every ScoreError
var ErrInvalidQuality = errors.New("not a Phred+33 quality value")

// ScoreError reports the first quality byte outside '!'..'~'
type ScoreError struct {
	Symbol   byte
	Position int
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("invalid quality %q at position %d", e.Symbol, e.Position)
}

func (e *ScoreError) Unwrap() error {
	return ErrInvalidQuality
}

// Mode selects how quality strings are stored
type Mode int

const (
	// ModePlain keeps every score, one byte per base
	ModePlain Mode = iota
	// ModeQuantized keeps 2 bits per base plus four levels per block
	ModeQuantized
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeQuantized:
		return "quantized"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Scores is a stored quality string. Positions are physical: callers that
// present a reversed view remap indexes before calling Score.
type Scores interface {
	Score(p uint32) uint8
	Len() int
	Clone() Scores
}

// Encode validates q and stores it using mode m
func Encode(q string, m Mode) (Scores, error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	switch m {
	case ModePlain:
		return EncodePlain(q), nil
	case ModeQuantized:
		return Quantize(q), nil
	default:
		return nil, fmt.Errorf("unknown quality mode %d", int(m))
	}
}

func validate(q string) error {
	for i := 0; i < len(q); i++ {
		if q[i] < Offset || q[i] > '~' {
			return &ScoreError{Symbol: q[i], Position: i}
		}
	}
	return nil
}
