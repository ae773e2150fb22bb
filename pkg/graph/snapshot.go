package graph

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"
)

// Snapshot format: [Magic:4][Version:2][Precision:1][Reserved:1][N:4][M:4]
// followed by three snappy-compressed sections (offsets, indices, weights),
// each prefixed by its compressed byte length as uint32. All integers are
// little-endian.
const (
	snapshotMagic   uint32 = 0x43_4C_53_56 // "CLSV"
	snapshotVersion uint16 = 1
)

// ErrBadSnapshot is returned when a snapshot stream is corrupt or was
// written at a different weight precision than requested.
var ErrBadSnapshot = errors.New("bad graph snapshot")

// WriteSnapshot writes the graph as a compressed binary snapshot.
func (g *CSR[W]) WriteSnapshot(w io.Writer) error {
	n := g.NumVertices()
	m := g.NumEdges()

	header := make([]byte, 16)
	binary.LittleEndian.PutUint32(header[0:4], snapshotMagic)
	binary.LittleEndian.PutUint16(header[4:6], snapshotVersion)
	header[6] = byte(weightSize[W]())
	binary.LittleEndian.PutUint32(header[8:12], uint32(n))
	binary.LittleEndian.PutUint32(header[12:16], uint32(m))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}

	if err := writeSection(w, int32Bytes(g.Offsets)); err != nil {
		return fmt.Errorf("writing offsets: %w", err)
	}
	if err := writeSection(w, int32Bytes(g.Indices)); err != nil {
		return fmt.Errorf("writing indices: %w", err)
	}
	if err := writeSection(w, weightBytes(g.Weights)); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshot. The weight
// type must match the precision the snapshot was written at.
func ReadSnapshot[W Weight](r io.Reader) (*CSR[W], error) {
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}

	if magic := binary.LittleEndian.Uint32(header[0:4]); magic != snapshotMagic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrBadSnapshot, magic)
	}
	if version := binary.LittleEndian.Uint16(header[4:6]); version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, version)
	}
	if prec := int(header[6]); prec != weightSize[W]() {
		return nil, fmt.Errorf("%w: written at %d-byte precision, reading at %d", ErrBadSnapshot, prec, weightSize[W]())
	}

	n := int32(binary.LittleEndian.Uint32(header[8:12]))
	m := int32(binary.LittleEndian.Uint32(header[12:16]))
	if n < 1 || m < 0 {
		return nil, fmt.Errorf("%w: n=%d m=%d", ErrBadSnapshot, n, m)
	}

	offsetBytes, err := readSection(r, (int(n)+1)*4)
	if err != nil {
		return nil, fmt.Errorf("reading offsets: %w", err)
	}
	indexBytes, err := readSection(r, int(m)*4)
	if err != nil {
		return nil, fmt.Errorf("reading indices: %w", err)
	}
	wBytes, err := readSection(r, int(m)*weightSize[W]())
	if err != nil {
		return nil, fmt.Errorf("reading weights: %w", err)
	}

	g := &CSR[W]{
		Offsets: bytesInt32(offsetBytes),
		Indices: bytesInt32(indexBytes),
		Weights: bytesWeight[W](wBytes),
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return g, nil
}

func writeSection(w io.Writer, raw []byte) error {
	compressed := snappy.Encode(nil, raw)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(compressed)
	return err
}

func readSection(r io.Reader, wantLen int) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	compressed := make([]byte, binary.LittleEndian.Uint32(lenBuf[:]))
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if len(raw) != wantLen {
		return nil, fmt.Errorf("%w: section is %d bytes, want %d", ErrBadSnapshot, len(raw), wantLen)
	}
	return raw, nil
}

func weightSize[W Weight]() int {
	var w W
	switch any(w).(type) {
	case float32:
		return 4
	default:
		return 8
	}
}

func int32Bytes(s []int32) []byte {
	out := make([]byte, len(s)*4)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

func bytesInt32(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func weightBytes[W Weight](s []W) []byte {
	if weightSize[W]() == 4 {
		out := make([]byte, len(s)*4)
		for i, v := range s {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(v)))
		}
		return out
	}
	out := make([]byte, len(s)*8)
	for i, v := range s {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(float64(v)))
	}
	return out
}

func bytesWeight[W Weight](b []byte) []W {
	if weightSize[W]() == 4 {
		out := make([]W, len(b)/4)
		for i := range out {
			out[i] = W(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
		}
		return out
	}
	out := make([]W, len(b)/8)
	for i := range out {
		out[i] = W(math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:])))
	}
	return out
}
