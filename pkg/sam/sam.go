/*
Package sam turns the reads of a SAM file into packed NucleicAcid records.
Parsing is done by biogo/hts; this package only decides which lines to keep
and how to hand them to a nucleic.Builder.
*/
package sam

import (
	"context"
	"io"

	biogosam "github.com/biogo/hts/sam"
	log "github.com/sirupsen/logrus"

	"github.com/virus-evolution/gonucleic/pkg/nucleic"
	"github.com/virus-evolution/gonucleic/pkg/quality"
)

// Options controls which SAM lines become records
type Options struct {
	// KeepUnmapped keeps reads with the unmapped flag (0x4) set
	KeepUnmapped bool
	// KeepSecondary keeps secondary (0x100) and supplementary (0x800)
	// mappings, which repeat a read that is already present
	KeepSecondary bool
	// Original presents reads mapped to the reverse strand (0x10) in the
	// orientation they were sequenced in. SAM stores them reverse
	// complemented.
	Original bool
	// Threads bounds the number of records packed at once
	Threads int
}

// Read is one kept SAM line
type Read struct {
	nucleic.Input
	Reverse bool
}

// fromRecord converts a biogo record. biogo stores QUAL as raw scores and
// fills it with 0xff when the line has '*'.
func fromRecord(rec *biogosam.Record) Read {
	r := Read{
		Input: nucleic.Input{
			Name: rec.Name,
			Data: string(rec.Seq.Expand()),
		},
		Reverse: rec.Flags&biogosam.Reverse != 0,
	}
	if len(rec.Qual) > 0 && rec.Qual[0] != 0xff {
		q := make([]byte, len(rec.Qual))
		for i, v := range rec.Qual {
			q[i] = v + quality.Offset
		}
		r.Quality = string(q)
	}
	return r
}

func getSamReads(in io.Reader, opts Options, chnl chan Read, cdone chan bool, cerr chan error) {

	s, err := biogosam.NewReader(in)
	if err != nil {
		cerr <- err
		return
	}

	for {
		rec, err := s.Read()

		if err == io.EOF {
			break
		} else if err != nil {
			cerr <- err
			return
		}

		if !opts.KeepUnmapped && rec.Flags&biogosam.Unmapped != 0 {
			log.Debugf("skipping unmapped read: %s", rec.Name)
			continue
		}

		if !opts.KeepSecondary && rec.Flags&(biogosam.Secondary|biogosam.Supplementary) != 0 {
			log.Debugf("ignoring non-primary mapping: %s", rec.Name)
			continue
		}

		// a '*' SEQ carries nothing to pack
		if rec.Seq.Length == 0 {
			log.Debugf("skipping read without a sequence: %s", rec.Name)
			continue
		}

		chnl <- fromRecord(rec)
	}

	cdone <- true
}

// ReadAll returns the kept reads of a SAM stream, in file order
func ReadAll(in io.Reader, opts Options) ([]Read, error) {
	chnl := make(chan Read)
	cdone := make(chan bool)
	cerr := make(chan error)

	go getSamReads(in, opts, chnl, cdone, cerr)

	reads := make([]Read, 0)
	for n := 1; n > 0; {
		select {
		case r := <-chnl:
			reads = append(reads, r)
		case err := <-cerr:
			return nil, err
		case <-cdone:
			n--
		}
	}
	return reads, nil
}

// Load packs every kept read of a SAM stream with b. Records are returned in
// file order.
func Load(ctx context.Context, in io.Reader, b *nucleic.Builder, opts Options) ([]*nucleic.NucleicAcid, error) {
	reads, err := ReadAll(in, opts)
	if err != nil {
		return nil, err
	}
	return Pack(ctx, reads, b, opts)
}

// Pack builds one record per read
func Pack(ctx context.Context, reads []Read, b *nucleic.Builder, opts Options) ([]*nucleic.NucleicAcid, error) {
	inputs := make([]nucleic.Input, len(reads))
	for i, r := range reads {
		inputs[i] = r.Input
	}

	records, err := b.NewAll(ctx, inputs, opts.Threads)
	if err != nil {
		return nil, err
	}

	if opts.Original {
		flipped := 0
		for i, r := range reads {
			if r.Reverse {
				records[i].ReverseAndComplement()
				flipped++
			}
		}
		log.Debugf("restored the sequenced orientation of %d reverse strand reads", flipped)
	}
	log.WithFields(log.Fields{
		"records": len(records),
		"quality": b.Quality,
	}).Debug("packed SAM reads")

	return records, nil
}
