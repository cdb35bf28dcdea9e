package nucleic

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/constraints"

	"github.com/virus-evolution/gonucleic/pkg/encoding"
	"github.com/virus-evolution/gonucleic/pkg/quality"
)

// ErrBadArchive is returned when an archive is truncated or was not written
// by WriteArchive
var ErrBadArchive = errors.New("not a nucleic archive")

const archiveMagic = "NUCA\x01"

// MaxNameLen bounds the record names an archive may declare
const MaxNameLen = 1 << 16

// slices are read this many elements at a time, so a corrupt length costs
// at most one chunk before the stream runs out
const readChunk = 1 << 16

const (
	flagReverse = 1 << iota
	flagPlain
	flagQuantized
)

// WriteArchive writes records to w as a zstd compressed stream of their
// packed buffers. Ids are not stored.
func WriteArchive(w io.Writer, records []*NucleicAcid) error {
	if _, err := io.WriteString(w, archiveMagic); err != nil {
		return err
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd encode: %w", err)
	}
	bw := bufio.NewWriter(zw)

	if err = writeUvarint(bw, uint64(len(records))); err != nil {
		zw.Close()
		return err
	}
	for _, rec := range records {
		if err = writeRecord(bw, rec); err != nil {
			zw.Close()
			return fmt.Errorf("writing %s: %w", rec.name, err)
		}
	}
	if err = bw.Flush(); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func writeUvarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	_, err := w.Write(buf[:binary.PutUvarint(buf[:], v)])
	return err
}

func writeRecord(w io.Writer, rec *NucleicAcid) error {
	var flags byte
	if rec.reverse {
		flags |= flagReverse
	}
	switch rec.quality.(type) {
	case quality.Plain:
		flags |= flagPlain
	case *quality.Quantized:
		flags |= flagQuantized
	}

	if err := writeUvarint(w, uint64(len(rec.name))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, rec.name); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(rec.length)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{flags}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, rec.data); err != nil {
		return err
	}

	switch q := rec.quality.(type) {
	case quality.Plain:
		_, err := w.Write(q)
		return err
	case *quality.Quantized:
		if err := binary.Write(w, binary.LittleEndian, q.Indices); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, q.Levels)
	}
	return nil
}

// ReadArchive reads records written by WriteArchive. Each record gets a new
// id from b's Counter, in archive order.
func (b *Builder) ReadArchive(r io.Reader) ([]*NucleicAcid, error) {
	if b.IDs == nil {
		return nil, ErrNoCounter
	}
	magic := make([]byte, len(archiveMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != archiveMagic {
		return nil, ErrBadArchive
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	defer zr.Close()
	br := bufio.NewReader(zr)

	n, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, badArchive(err)
	}
	records := make([]*NucleicAcid, 0)
	for i := uint64(0); i < n; i++ {
		rec, err := readRecord(br)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, badArchive(err))
		}
		if rec.id, err = b.IDs.Next(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func badArchive(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated", ErrBadArchive)
	}
	return err
}

func readRecord(r *bufio.Reader) (*NucleicAcid, error) {
	nameLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if nameLen > MaxNameLen {
		return nil, fmt.Errorf("%w: name length %d", ErrBadArchive, nameLen)
	}
	name, err := readSlice[byte](r, nameLen)
	if err != nil {
		return nil, err
	}
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if length > uint64(All) {
		return nil, fmt.Errorf("%w: length %d", ErrBadArchive, length)
	}
	flags, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	rec := &NucleicAcid{
		name:    string(name),
		length:  uint32(length),
		reverse: flags&flagReverse != 0,
	}
	words := encoding.CeilDiv(length, encoding.CodesPerWord)
	if rec.data, err = readSlice[uint64](r, words); err != nil {
		return nil, err
	}

	switch {
	case flags&flagPlain != 0:
		q, err := readSlice[uint8](r, length)
		if err != nil {
			return nil, err
		}
		rec.quality = quality.Plain(q)
	case flags&flagQuantized != 0:
		q := &quality.Quantized{N: uint32(length)}
		if q.Indices, err = readSlice[uint64](r, words); err != nil {
			return nil, err
		}
		if q.Levels, err = readSlice[uint32](r, encoding.CeilDiv(length, quality.BlockSize)); err != nil {
			return nil, err
		}
		rec.quality = q
	}
	return rec, nil
}

// readSlice reads n little endian values, growing the result one chunk at
// a time rather than trusting n up front
func readSlice[T constraints.Unsigned](r io.Reader, n uint64) ([]T, error) {
	out := make([]T, 0, min(n, readChunk))
	for left := n; left > 0; {
		chunk := make([]T, min(left, readChunk))
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		left -= uint64(len(chunk))
	}
	return out, nil
}
