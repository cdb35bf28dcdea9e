package nucleic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virus-evolution/gonucleic/pkg/alphabet"
	"github.com/virus-evolution/gonucleic/pkg/quality"
)

func mustNext(t *testing.T, c *Counter) uint32 {
	t.Helper()
	id, err := c.Next()
	require.NoError(t, err)
	return id
}

func TestCounter(t *testing.T) {
	c := NewCounter(5)
	assert.Equal(t, uint32(5), mustNext(t, c))
	assert.Equal(t, uint32(6), mustNext(t, c))
	assert.Equal(t, uint64(7), c.Peek())
	c.Reset(0)
	assert.Equal(t, uint32(0), mustNext(t, c))
}

func TestCounterExhausted(t *testing.T) {
	c := NewCounter(math.MaxUint32 - 1)
	assert.Equal(t, uint32(math.MaxUint32-1), mustNext(t, c))
	assert.Equal(t, uint32(math.MaxUint32), mustNext(t, c))

	// no wrap back to zero
	for i := 0; i < 3; i++ {
		_, err := c.Next()
		assert.True(t, errors.Is(err, ErrIDsExhausted))
	}

	b := &Builder{IDs: c}
	_, err := b.New("late", "ACGT")
	assert.True(t, errors.Is(err, ErrIDsExhausted))

	c.Reset(0)
	assert.Equal(t, uint32(0), mustNext(t, c))
}

func TestBuilderWithoutCounter(t *testing.T) {
	b := &Builder{Quality: quality.ModeQuantized}
	_, err := b.New("x", "ACGT")
	assert.True(t, errors.Is(err, ErrNoCounter))

	_, err = b.NewAll(context.Background(), []Input{{Name: "x", Data: "ACGT"}}, 1)
	assert.True(t, errors.Is(err, ErrNoCounter))
}

func TestCounterConcurrent(t *testing.T) {
	c := NewCounter(0)
	const workers, each = 8, 1000

	ids := make(chan uint32, workers*each)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				id, err := c.Next()
				if err != nil {
					panic(err)
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint32]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*each)
	assert.Equal(t, uint64(workers*each), c.Peek())
}

func TestBuilderIDs(t *testing.T) {
	b := NewBuilder()
	b.IDs.Reset(10)
	s, err := b.New("a", "ACGT")
	require.NoError(t, err)
	r, err := b.New("b", "ACGT")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), s.ID())
	assert.Equal(t, uint32(11), r.ID())

	// builders sharing a counter never hand out the same id
	other := &Builder{IDs: b.IDs}
	o, err := other.New("c", "ACGT")
	require.NoError(t, err)
	assert.Equal(t, uint32(12), o.ID())
}

func TestNewAll(t *testing.T) {
	inputs := make([]Input, 200)
	for i := range inputs {
		inputs[i] = Input{
			Name:    fmt.Sprintf("read%d", i),
			Data:    "ACGTTGCA"[i%8:] + "GATTACA",
			Quality: "IIIIIIIIIIIIIII"[:15-i%8],
		}
	}

	b := NewBuilder()
	records, err := b.NewAll(context.Background(), inputs, 4)
	require.NoError(t, err)
	require.Len(t, records, len(inputs))

	ids := make(map[uint32]bool)
	for i, rec := range records {
		assert.Equal(t, inputs[i].Name, rec.Name())
		assert.Equal(t, inputs[i].Data, rec.InflateData(0, All))
		assert.Equal(t, inputs[i].Quality, rec.InflateQuality(0, All))
		ids[rec.ID()] = true
	}
	assert.Len(t, ids, len(inputs))
	assert.Equal(t, uint64(len(inputs)), b.IDs.Peek())
}

func TestNewAllFails(t *testing.T) {
	inputs := []Input{
		{Name: "good", Data: "ACGT"},
		{Name: "bad", Data: "ACGJ"},
		{Name: "good", Data: "ACGT"},
	}
	records, err := NewBuilder().NewAll(context.Background(), inputs, 0)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, alphabet.ErrInvalidSymbol))
}

func TestNewAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records, err := NewBuilder().NewAll(ctx, []Input{{Name: "a", Data: "ACGT"}}, 1)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, context.Canceled))
}
