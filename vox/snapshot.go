package vox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// A snapshot is a compiled shape: the grid with its palette, packed and
// checksummed.
//
//	"VOXS" | ver | enc | bpp | N | palette | payload | xxhash64
//
// Cells hold 0 for blank or 1+slot, slot being the character's index in
// Palette.Chars. enc bit 7 marks a zstd payload.
const (
	snapshotMagic   = "VOXS"
	snapshotVersion = 1

	encDense  = 0
	encBitmap = 1 // occupancy bitmap + non-blank values
	encZstd   = 0x80

	// MaxSnapshotSide bounds N so N³ cells stay allocatable.
	MaxSnapshotSide = 1024

	minZstdLimit = 64 << 20
)

var (
	ErrSnapshot = errors.New("invalid snapshot")
	ErrChecksum = errors.New("snapshot checksum mismatch")
)

// SnapshotHeader holds the fixed fields of a snapshot.
type SnapshotHeader struct {
	Ver uint8
	Enc uint8
	BPP uint8
	N   int
}

type encoded struct {
	enc     uint8
	payload []byte
}

// EncodeSnapshot compiles s into a snapshot.
func EncodeSnapshot(s *Shape) []byte {
	chars := s.palette.Chars()
	bpp := uint8(bits.Len(uint(len(chars))))
	if bpp == 0 {
		bpp = 1
	}
	cells := slotCells(s.grid, chars)
	best := bestEncoding(cells, bpp)

	out := []byte(snapshotMagic)
	out = append(out, snapshotVersion, best.enc, bpp)
	out = appendUvarint(out, uint32(s.grid.N))
	out = appendUvarint(out, uint32(len(chars)))
	for _, c := range chars {
		out = append(out, c)
		out = appendUvarint(out, zigzag(s.palette[c]))
	}
	out = appendUvarint(out, uint32(len(best.payload)))
	out = append(out, best.payload...)
	return binary.LittleEndian.AppendUint64(out, xxhash.Sum64(out))
}

// DecodeSnapshot rebuilds the shape held in data. The grid goes through
// NewShape again, so voxels come back in text order.
func DecodeSnapshot(data []byte) (*Shape, error) {
	g, p, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	return NewShape(g, p)
}

func decodeSnapshot(data []byte) (*Grid, Palette, error) {
	if len(data) < len(snapshotMagic)+3+8 || string(data[:4]) != snapshotMagic {
		return nil, nil, fmt.Errorf("%w: bad magic", ErrSnapshot)
	}
	body, sum := data[:len(data)-8], binary.LittleEndian.Uint64(data[len(data)-8:])
	if xxhash.Sum64(body) != sum {
		return nil, nil, ErrChecksum
	}
	hdr := SnapshotHeader{Ver: body[4], Enc: body[5], BPP: body[6]}
	if hdr.Ver != snapshotVersion {
		return nil, nil, fmt.Errorf("%w: version %d", ErrSnapshot, hdr.Ver)
	}
	if hdr.BPP == 0 || hdr.BPP > 8 {
		return nil, nil, fmt.Errorf("%w: bpp %d", ErrSnapshot, hdr.BPP)
	}

	pos := 7
	n, err := readUvarint(body, &pos)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: side: %w", ErrSnapshot, err)
	}
	if n > MaxSnapshotSide {
		return nil, nil, fmt.Errorf("%w: side %d exceeds %d", ErrSnapshot, n, MaxSnapshotSide)
	}
	hdr.N = int(n)
	count, err := readUvarint(body, &pos)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: palette: %w", ErrSnapshot, err)
	}
	// Every entry takes at least two bytes, and cells address at most 255 slots.
	if count > 255 || int(count)*2 > len(body)-pos {
		return nil, nil, fmt.Errorf("%w: palette count %d", ErrSnapshot, count)
	}
	p := make(Palette, count)
	chars := make([]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if pos >= len(body) {
			return nil, nil, fmt.Errorf("%w: palette truncated", ErrSnapshot)
		}
		c := body[pos]
		pos++
		hue, err := readUvarint(body, &pos)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: palette: %w", ErrSnapshot, err)
		}
		p[c] = unzigzag(hue)
		chars = append(chars, c)
	}
	plen, err := readUvarint(body, &pos)
	if err != nil || int(plen) != len(body)-pos {
		return nil, nil, fmt.Errorf("%w: payload length", ErrSnapshot)
	}
	payload := body[pos:]
	total := hdr.N * hdr.N * hdr.N
	// A bitmap payload holds at most total/8 bytes of occupancy plus one
	// byte per cell. zstd windows are never below its own floor.
	limit := max(total+total/8+8, minZstdLimit)

	if hdr.Enc&encZstd != 0 {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(limit)))
		if err != nil {
			return nil, nil, err
		}
		defer dec.Close()
		if payload, err = dec.DecodeAll(payload, nil); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
		}
	}

	if need := minPayload(hdr.Enc&^encZstd, total, hdr.BPP); len(payload) < need {
		return nil, nil, fmt.Errorf("%w: payload of %d bytes, side %d needs %d", ErrSnapshot, len(payload), hdr.N, need)
	}
	var cells []uint8
	switch hdr.Enc &^ encZstd {
	case encDense:
		cells, err = decodeDense(payload, total, hdr.BPP)
	case encBitmap:
		cells, err = decodeBitmap(payload, total, hdr.BPP)
	default:
		return nil, nil, fmt.Errorf("%w: encoding %d", ErrSnapshot, hdr.Enc)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	g := NewGrid(hdr.N)
	for i, v := range cells {
		if v == 0 {
			continue
		}
		if int(v) > len(chars) {
			return nil, nil, fmt.Errorf("%w: slot %d out of range", ErrSnapshot, v)
		}
		g.Cells[i] = chars[v-1]
	}
	return g, p, nil
}

// minPayload is the smallest payload that can describe total cells.
func minPayload(enc uint8, total int, bpp uint8) int {
	if enc == encBitmap {
		return (total + 7) / 8
	}
	return (total*int(bpp) + 7) / 8
}

func slotCells(g *Grid, chars []byte) []uint8 {
	cells := make([]uint8, len(g.Cells))
	for i, ch := range g.Cells {
		if ch == Blank {
			continue
		}
		cells[i] = uint8(bytes.IndexByte(chars, ch) + 1)
	}
	return cells
}

func encodeDense(cells []uint8, bpp uint8) []byte {
	bw := newBitWriter()
	for _, c := range cells {
		bw.writeBits(uint64(c), bpp)
	}
	return bw.bytes()
}

func decodeDense(payload []byte, total int, bpp uint8) ([]uint8, error) {
	br := newBitReader(payload)
	cells := make([]uint8, total)
	for i := range cells {
		v, err := br.readBits(bpp)
		if err != nil {
			return nil, err
		}
		cells[i] = uint8(v)
	}
	return cells, nil
}

func encodeBitmap(cells []uint8, bpp uint8) []byte {
	bitmap := make([]byte, (len(cells)+7)/8)
	bw := newBitWriter()
	for i, c := range cells {
		if c != 0 {
			bitmap[i>>3] |= 1 << (uint(i) & 7)
			bw.writeBits(uint64(c), bpp)
		}
	}
	return append(bitmap, bw.bytes()...)
}

func decodeBitmap(payload []byte, total int, bpp uint8) ([]uint8, error) {
	size := (total + 7) / 8
	if len(payload) < size {
		return nil, fmt.Errorf("bitmap needs %d bytes, have %d", size, len(payload))
	}
	bitmap := payload[:size]
	br := newBitReader(payload[size:])
	cells := make([]uint8, total)
	for i := range cells {
		if (bitmap[i>>3]>>(uint(i)&7))&1 == 0 {
			continue
		}
		v, err := br.readBits(bpp)
		if err != nil {
			return nil, err
		}
		cells[i] = uint8(v)
	}
	return cells, nil
}

// bestEncoding picks the smallest of the raw and zstd-compressed encodings.
func bestEncoding(cells []uint8, bpp uint8) encoded {
	candidates := []encoded{
		{enc: encDense, payload: encodeDense(cells, bpp)},
		{enc: encBitmap, payload: encodeBitmap(cells, bpp)},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.payload) < len(best.payload) {
			best = c
		}
	}
	zw, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return best
	}
	defer zw.Close()
	for _, c := range candidates {
		zb := zw.EncodeAll(c.payload, nil)
		if len(zb) < len(best.payload) {
			best = encoded{enc: c.enc | encZstd, payload: zb}
		}
	}
	return best
}
