// Package alphabet provides the byte-level lookup tables that map
// nucleotide symbols (including IUPAC ambiguity codes) onto 2-bit codes,
// and back again
package alphabet

import (
	"errors"
	"fmt"
)

// Invalid is the table entry for bytes that are not nucleotides
const Invalid uint8 = 255

// ErrInvalidSymbol is matched by every SymbolError
var ErrInvalidSymbol = errors.New("not a nucleotide")

// SymbolError reports the first byte of an input that a Table rejected
type SymbolError struct {
	Symbol   byte
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid nucleotide %q at position %d", e.Symbol, e.Position)
}

func (e *SymbolError) Unwrap() error {
	return ErrInvalidSymbol
}

// Table maps every possible byte to a 2-bit code (A=0, C=1, G=2, T=3) or to
// Invalid
type Table [256]uint8

// Lookup returns the 2-bit code for b, and false if b is not in the table
func (t *Table) Lookup(b byte) (uint8, bool) {
	c := t[b]
	return c, c != Invalid
}

var decoder = [4]byte{'A', 'C', 'G', 'T'}

// Decode returns the upper case symbol for the low two bits of code
func Decode(code uint64) byte {
	return decoder[code&3]
}

// Complement returns the Watson-Crick partner of a 2-bit code. Given the
// A=0, C=1, G=2, T=3 layout this swaps A<->T and C<->G
func Complement(code uint64) uint64 {
	return code ^ 3
}

// Each ambiguity code collapses to one fixed base. This is lossy, and
// follows the table of the tool this format comes from rather than any
// notion of "most likely" base.
var ambiguity = map[byte]uint8{
	'R': 0, // A or G
	'Y': 3, // C or T
	'K': 2, // G or T
	'M': 1, // A or C
	'S': 1, // C or G
	'W': 0, // A or T
	'B': 1, // C, G or T
	'D': 0, // A, G or T
	'H': 3, // A, C or T
	'V': 2, // A, C or G
	'N': 0, // any
}

// Strict accepts A, C, G, T and the IUPAC ambiguity codes in either case.
// Everything else, gaps included, is Invalid.
var Strict = MakeStrictTable()

// Permissive is Strict plus '-' (read as A) and U (read as T)
var Permissive = MakePermissiveTable()

// MakeStrictTable returns a fresh copy of the Strict table
func MakeStrictTable() Table {
	var t Table
	for i := range t {
		t[i] = Invalid
	}
	for i, b := range decoder {
		t[b] = uint8(i)
		t[b+'a'-'A'] = uint8(i)
	}
	for b, c := range ambiguity {
		t[b] = c
		t[b+'a'-'A'] = c
	}
	return t
}

// MakePermissiveTable returns a fresh copy of the Permissive table
func MakePermissiveTable() Table {
	t := MakeStrictTable()
	t['-'] = 0
	t['U'] = 3
	t['u'] = 3
	return t
}
