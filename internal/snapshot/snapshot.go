// Package snapshot encodes an ordered record collection into the compact
// binary form used by save/load. The payload is snappy-compressed; field
// values and relative order round-trip exactly.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang/snappy"

	"github.com/runnerr0/pagedex/internal/record"
)

// ErrBadSnapshot indicates bytes that were not produced by Write, or
// were corrupted afterwards.
var ErrBadSnapshot = errors.New("snapshot: bad magic or corrupt payload")

var magic = []byte("PDXS")

// Write serializes recs to w: 4-byte magic, then a snappy block of
// uvarint count followed by (varint unix-seconds, uvarint page length,
// page bytes, uvarint counter) per record.
func Write(w io.Writer, recs []record.Record) error {
	var payload bytes.Buffer

	var scratch [binary.MaxVarintLen64]byte
	putUvarint := func(v uint64) {
		n := binary.PutUvarint(scratch[:], v)
		payload.Write(scratch[:n])
	}
	putVarint := func(v int64) {
		n := binary.PutVarint(scratch[:], v)
		payload.Write(scratch[:n])
	}

	putUvarint(uint64(len(recs)))
	for _, r := range recs {
		putVarint(r.Time.Unix())
		putUvarint(uint64(len(r.Page)))
		payload.WriteString(r.Page)
		putUvarint(r.Counter)
	}

	if _, err := w.Write(magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, payload.Bytes())); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Read decodes a collection previously produced by Write. The relative
// order of records is whatever the writer stored; Read does not sort.
func Read(r io.Reader) ([]record.Record, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if !bytes.Equal(header, magic) {
		return nil, ErrBadSnapshot
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	buf := bytes.NewReader(payload)
	count, err := binary.ReadUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: record count: %v", ErrBadSnapshot, err)
	}

	recs := make([]record.Record, 0, count)
	for i := uint64(0); i < count; i++ {
		unix, err := binary.ReadVarint(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d timestamp: %v", ErrBadSnapshot, i, err)
		}
		pageLen, err := binary.ReadUvarint(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d page length: %v", ErrBadSnapshot, i, err)
		}
		page := make([]byte, pageLen)
		if _, err := io.ReadFull(buf, page); err != nil {
			return nil, fmt.Errorf("%w: record %d page: %v", ErrBadSnapshot, i, err)
		}
		counter, err := binary.ReadUvarint(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d counter: %v", ErrBadSnapshot, i, err)
		}
		recs = append(recs, record.Record{
			Time:    time.Unix(unix, 0).UTC(),
			Page:    string(page),
			Counter: counter,
		})
	}

	if buf.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadSnapshot, buf.Len())
	}

	return recs, nil
}
