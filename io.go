// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"encoding/binary"
	"math"
)

// blockReader reads values at absolute positions in a metadata block.
// Reads past end panic with an ErrInvalidStructure error, which Decode
// recovers and returns.
// Note that this is not thread safe.
type blockReader struct {
	b         []byte
	end       int
	byteOrder binary.ByteOrder
}

func (e *blockReader) readBytes(pos, n int) []byte {
	if pos < 0 || n < 0 || pos > e.end-n {
		e.stop(pos, n)
	}
	return e.b[pos : pos+n]
}

func (e *blockReader) stop(pos, n int) {
	panic(newStructureErrorf("read of %d bytes at offset %d is outside the block of length %d", n, pos, e.end))
}

func (e *blockReader) read1(pos int) uint8 {
	return e.readBytes(pos, 1)[0]
}

func (e *blockReader) read1s(pos int) int8 {
	return int8(e.read1(pos))
}

func (e *blockReader) read2(pos int) uint16 {
	return e.byteOrder.Uint16(e.readBytes(pos, 2))
}

func (e *blockReader) read2s(pos int) int16 {
	return int16(e.read2(pos))
}

func (e *blockReader) read4(pos int) uint32 {
	return e.byteOrder.Uint32(e.readBytes(pos, 4))
}

func (e *blockReader) read4s(pos int) int32 {
	return int32(e.read4(pos))
}

func (e *blockReader) read4f(pos int) float32 {
	return math.Float32frombits(e.read4(pos))
}

func (e *blockReader) read8f(pos int) float64 {
	return math.Float64frombits(e.byteOrder.Uint64(e.readBytes(pos, 8)))
}

func (e *blockReader) readRat(pos int) Rat[uint32] {
	return Rat[uint32]{Num: e.read4(pos), Den: e.read4(pos + 4)}
}

func (e *blockReader) readRatSigned(pos int) Rat[int32] {
	return Rat[int32]{Num: e.read4s(pos), Den: e.read4s(pos + 4)}
}
