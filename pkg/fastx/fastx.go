/*
Package fastx writes NucleicAcid records as FASTQ, or as FASTA when a record
has no quality scores. Sequences are read through the record's current
orientation.
*/
package fastx

import (
	"bufio"
	"io"

	"github.com/virus-evolution/gonucleic/pkg/nucleic"
)

// Slice selects the part of each record to write. The zero value writes
// nothing; use Whole for complete records.
type Slice struct {
	Start  uint32
	Length uint32
}

// Whole selects every base of a record
var Whole = Slice{Start: 0, Length: nucleic.All}

// Write writes records to w in order. FASTA sequence lines are wrapped to
// wrap characters, or not at all if wrap < 1. Records with nothing in the
// slice are skipped.
func Write(w io.Writer, records []*nucleic.NucleicAcid, s Slice, wrap int) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		seq := rec.InflateData(s.Start, s.Length)
		if len(seq) == 0 {
			continue
		}

		var err error
		if rec.HasQuality() {
			err = writeFastq(bw, rec.Name(), seq, rec.InflateQuality(s.Start, s.Length))
		} else {
			err = writeFasta(bw, rec.Name(), seq, wrap)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeFastq(w *bufio.Writer, name, seq, qual string) error {
	for _, s := range []string{"@", name, "\n", seq, "\n+\n", qual, "\n"} {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

func writeFasta(w *bufio.Writer, name, seq string, wrap int) error {
	_, err := w.WriteString(">" + name + "\n")
	if err != nil {
		return err
	}
	if wrap < 1 {
		wrap = len(seq)
	}
	for written := 0; written < len(seq); written += wrap {
		end := written + wrap
		if end > len(seq) {
			end = len(seq)
		}
		_, err = w.WriteString(seq[written:end] + "\n")
		if err != nil {
			return err
		}
	}
	return nil
}
