package vox

import (
	"errors"
	"io"
)

var errUvarintOverflow = errors.New("uvarint overflows 32 bits")

// bitWriter packs values LSB-first into bytes.
type bitWriter struct {
	buf []byte
	acc uint64
	n   uint8
}

func newBitWriter() *bitWriter { return &bitWriter{buf: make([]byte, 0, 256)} }

func (w *bitWriter) writeBits(v uint64, bits uint8) {
	w.acc |= (v & ((1 << bits) - 1)) << w.n
	w.n += bits
	for w.n >= 8 {
		w.buf = append(w.buf, byte(w.acc&0xFF))
		w.acc >>= 8
		w.n -= 8
	}
}

// bytes flushes a partial trailing byte and returns the packed stream.
func (w *bitWriter) bytes() []byte {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc&0xFF))
		w.acc = 0
		w.n = 0
	}
	return w.buf
}

type bitReader struct {
	data []byte
	acc  uint64
	n    uint8
	pos  int
}

func newBitReader(b []byte) *bitReader { return &bitReader{data: b} }

func (r *bitReader) readBits(bits uint8) (uint64, error) {
	for r.n < bits {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		r.acc |= uint64(r.data[r.pos]) << r.n
		r.n += 8
		r.pos++
	}
	v := r.acc & (1<<bits - 1)
	r.acc >>= bits
	r.n -= bits
	return v, nil
}

func appendUvarint(dst []byte, x uint32) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

func readUvarint(src []byte, pos *int) (uint32, error) {
	var x uint32
	var s uint
	for i := *pos; ; i++ {
		if i >= len(src) {
			return 0, io.ErrUnexpectedEOF
		}
		b := src[i]
		if s == 28 && b > 0x0F {
			return 0, errUvarintOverflow
		}
		if b < 0x80 {
			*pos = i + 1
			return x | uint32(b)<<s, nil
		}
		x |= uint32(b&0x7F) << s
		s += 7
	}
}

func zigzag(v int) uint32   { return uint32((int32(v) << 1) ^ (int32(v) >> 31)) }
func unzigzag(u uint32) int { return int(int32(u>>1) ^ -int32(u&1)) }
