package nucleic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/virus-evolution/gonucleic/pkg/alphabet"
	"github.com/virus-evolution/gonucleic/pkg/encoding"
	"github.com/virus-evolution/gonucleic/pkg/quality"
)

// ErrNoCounter is returned by a Builder whose IDs field is nil
var ErrNoCounter = errors.New("builder has no id counter")

// Builder constructs NucleicAcids. It owns the id Counter, so every record
// built through the same Builder (or Builders sharing a Counter) gets a
// distinct id. IDs is required; NewBuilder sets it, and a literal Builder
// without one fails with ErrNoCounter.
type Builder struct {
	IDs      *Counter
	Alphabet *alphabet.Table // nil means alphabet.Strict
	Quality  quality.Mode
}

// NewBuilder returns a Builder with the strict alphabet and plain quality
// scores, numbering records from zero
func NewBuilder() *Builder {
	return &Builder{IDs: NewCounter(0), Quality: quality.ModePlain}
}

// Input is the raw text of one record. Quality may be empty.
type Input struct {
	Name    string
	Data    string
	Quality string
}

func (b *Builder) table() *alphabet.Table {
	if b.Alphabet == nil {
		return &alphabet.Strict
	}
	return b.Alphabet
}

// New packs data into a record without quality scores. Nothing is returned
// if data holds a byte the alphabet rejects.
func (b *Builder) New(name, data string) (*NucleicAcid, error) {
	return b.NewWithQuality(name, data, "")
}

// NewWithQuality packs data and its Phred+33 quality string. An empty
// quality string gives a record without quality; any other length must
// match data.
func (b *Builder) NewWithQuality(name, data, qual string) (*NucleicAcid, error) {
	if b.IDs == nil {
		return nil, ErrNoCounter
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%s: %d bases is more than a record can hold", name, len(data))
	}
	if len(qual) != 0 && len(qual) != len(data) {
		return nil, fmt.Errorf("%s: %d bases, %d scores: %w", name, len(data), len(qual), ErrLengthMismatch)
	}

	words, err := encoding.Pack(data, b.table())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var scores quality.Scores
	if len(qual) != 0 {
		if scores, err = quality.Encode(qual, b.Quality); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	id, err := b.IDs.Next()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &NucleicAcid{
		id:      id,
		name:    name,
		data:    words,
		quality: scores,
		length:  uint32(len(data)),
	}, nil
}

// NewAll builds one record per input on up to threads goroutines (all CPUs
// if threads < 1). The result is in input order. Ids are assigned as
// records finish, so they are unique but not ordered like the inputs. The
// first failure cancels the remaining work and no records are returned.
func (b *Builder) NewAll(ctx context.Context, inputs []Input, threads int) ([]*NucleicAcid, error) {
	if b.IDs == nil {
		return nil, ErrNoCounter
	}
	if threads < 1 {
		threads = runtime.NumCPU()
	}

	out := make([]*NucleicAcid, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := b.NewWithQuality(inputs[i].Name, inputs[i].Data, inputs[i].Quality)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
