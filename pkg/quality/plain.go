package quality

// Plain holds one score per base at full precision
type Plain []uint8

// EncodePlain stores q[i] - '!' for every position. q is not validated.
func EncodePlain(q string) Plain {
	s := make(Plain, len(q))
	for i := 0; i < len(q); i++ {
		s[i] = q[i] - Offset
	}
	return s
}

func (s Plain) Score(p uint32) uint8 {
	return s[p]
}

func (s Plain) Len() int {
	return len(s)
}

func (s Plain) Clone() Scores {
	c := make(Plain, len(s))
	copy(c, s)
	return c
}

// String returns the Phred+33 quality string
func (s Plain) String() string {
	b := make([]byte, len(s))
	for i, v := range s {
		b[i] = v + Offset
	}
	return string(b)
}
