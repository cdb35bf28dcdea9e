package nucleic

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virus-evolution/gonucleic/pkg/quality"
)

func TestArchiveRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := NewBuilder()

	var records []*NucleicAcid
	for i, n := range []int{0, 1, 40, 129, 1000} {
		data := randomBases(rng, n)
		qual := randomQuality(rng, n)

		plain, err := b.NewWithQuality("plain", data, qual)
		require.NoError(t, err)
		b.Quality = quality.ModeQuantized
		quantized, err := b.NewWithQuality("quantized", data, qual)
		require.NoError(t, err)
		b.Quality = quality.ModePlain
		bare, err := b.New("bare", data)
		require.NoError(t, err)

		if i%2 == 1 {
			quantized.ReverseAndComplement()
		}
		records = append(records, plain, quantized, bare)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, records))

	next := b.IDs.Peek()
	restored, err := b.ReadArchive(&buf)
	require.NoError(t, err)
	require.Len(t, restored, len(records))

	for i, rec := range restored {
		want := records[i]
		assert.Equal(t, uint32(next)+uint32(i), rec.ID(), "restored records get fresh ids")
		assert.Equal(t, want.Name(), rec.Name())
		assert.Equal(t, want.Len(), rec.Len())
		assert.Equal(t, want.IsReverseComplement(), rec.IsReverseComplement())
		assert.Equal(t, want.HasQuality(), rec.HasQuality())
		assert.Equal(t, want.InflateData(0, All), rec.InflateData(0, All))
		assert.Equal(t, want.InflateQuality(0, All), rec.InflateQuality(0, All))
		if want.HasQuality() {
			assert.Equal(t, want.QualityMode(), rec.QualityMode())
		}
	}
}

func TestArchiveEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, nil))
	records, err := NewBuilder().ReadArchive(&buf)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestArchiveBadMagic(t *testing.T) {
	_, err := NewBuilder().ReadArchive(bytes.NewReader([]byte(">read1\nACGT\n")))
	assert.True(t, errors.Is(err, ErrBadArchive))
}

func TestArchiveTruncated(t *testing.T) {
	s, err := NewBuilder().NewWithQuality("read", "ACGTACGTAC", "IIIIIIIIII")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, []*NucleicAcid{s}))

	cut := len(archiveMagic) + (buf.Len()-len(archiveMagic))/2
	_, err = NewBuilder().ReadArchive(bytes.NewReader(buf.Bytes()[:cut]))
	assert.Error(t, err)
}

// archiveOf frames a hand built payload the way WriteArchive does
func archiveOf(t *testing.T, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(archiveMagic)
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestArchiveCorruptHeader(t *testing.T) {
	name := binary.AppendUvarint(nil, 1)
	name = binary.AppendUvarint(name, 1<<62)

	long := binary.AppendUvarint(nil, 1)
	long = binary.AppendUvarint(long, 4)
	long = append(long, "read"...)
	long = binary.AppendUvarint(long, math.MaxUint32)
	long = append(long, flagQuantized)

	tooLong := binary.AppendUvarint(nil, 1)
	tooLong = binary.AppendUvarint(tooLong, 0)
	tooLong = binary.AppendUvarint(tooLong, math.MaxUint32+1)

	cases := map[string][]byte{
		"name length":      name,
		"unbacked length":  long,
		"oversized length": tooLong,
	}
	for label, payload := range cases {
		var err error
		require.NotPanics(t, func() {
			_, err = NewBuilder().ReadArchive(bytes.NewReader(archiveOf(t, payload)))
		}, label)
		assert.True(t, errors.Is(err, ErrBadArchive), "%s: %v", label, err)
	}
}

func TestArchiveIDs(t *testing.T) {
	s, err := NewBuilder().New("read", "ACGT")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, []*NucleicAcid{s}))

	_, err = (&Builder{}).ReadArchive(bytes.NewReader(buf.Bytes()))
	assert.True(t, errors.Is(err, ErrNoCounter))

	_, err = (&Builder{IDs: NewCounter(math.MaxUint32)}).ReadArchive(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	b := &Builder{IDs: NewCounter(math.MaxUint32)}
	b.IDs.Next()
	_, err = b.ReadArchive(bytes.NewReader(buf.Bytes()))
	assert.True(t, errors.Is(err, ErrIDsExhausted))
}
