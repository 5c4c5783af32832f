// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock_test

import (
	"encoding/binary"
	"math"

	"github.com/magnifier/exifblock"
)

// testDir is a directory to be laid out by buildBlock.
type testDir struct {
	entries   []testEntry
	thumbnail []byte
	next      *testDir
}

type testEntry struct {
	tag    uint16
	format exifblock.Format
	count  uint32
	enc    func(order binary.ByteOrder) []byte
	sub    *testDir
}

// buildBlock lays out d and everything it points to after a block header.
// Values that don't fit in an entry and sub directories are placed right after
// the directory referring to them.
func buildBlock(order binary.ByteOrder, d *testDir) []byte {
	bb := &blockBuilder{order: order}
	bb.buf = append(bb.buf, "Exif\x00\x00"...)
	if order == binary.BigEndian {
		bb.buf = append(bb.buf, "MM"...)
	} else {
		bb.buf = append(bb.buf, "II"...)
	}
	bb.buf = appendOrder(order).AppendUint16(bb.buf, 0x2a)
	bb.buf = appendOrder(order).AppendUint32(bb.buf, 8)
	bb.writeDir(d)
	return bb.buf
}

type blockBuilder struct {
	order binary.ByteOrder
	buf   []byte
}

// offset returns the current position relative to the byte order marker.
func (bb *blockBuilder) offset() uint32 {
	return uint32(len(bb.buf) - 6)
}

func (bb *blockBuilder) writeDir(d *testDir) uint32 {
	entries := d.entries
	if d.thumbnail != nil {
		entries = append(entries[:len(entries):len(entries)],
			long(uint16(exifblock.TagThumbnailOffset), 0),
			long(uint16(exifblock.TagThumbnailLength), uint32(len(d.thumbnail))),
		)
	}

	start := len(bb.buf)
	dirOffset := bb.offset()
	n := len(entries)
	bb.buf = append(bb.buf, make([]byte, 2+12*n+4)...)
	bb.order.PutUint16(bb.buf[start:], uint16(n))

	for i, e := range entries {
		p := start + 2 + 12*i
		bb.order.PutUint16(bb.buf[p:], e.tag)
		bb.order.PutUint16(bb.buf[p+2:], uint16(e.format))
		bb.order.PutUint32(bb.buf[p+4:], e.count)
		if e.sub != nil {
			subOffset := bb.writeDir(e.sub)
			bb.order.PutUint32(bb.buf[p+8:], subOffset)
			continue
		}
		data := e.enc(bb.order)
		if len(data) > 4 {
			bb.order.PutUint32(bb.buf[p+8:], bb.offset())
			bb.buf = append(bb.buf, data...)
		} else {
			copy(bb.buf[p+8:p+12], data)
		}
	}

	if d.thumbnail != nil {
		p := start + 2 + 12*(n-2)
		bb.order.PutUint32(bb.buf[p+8:], bb.offset())
		bb.buf = append(bb.buf, d.thumbnail...)
	}

	if d.next != nil {
		nextOffset := bb.writeDir(d.next)
		bb.order.PutUint32(bb.buf[start+2+12*n:], nextOffset)
	}

	return dirOffset
}

func raw(tag uint16, format exifblock.Format, count uint32, data []byte) testEntry {
	return testEntry{tag: tag, format: format, count: count, enc: func(binary.ByteOrder) []byte { return data }}
}

func ascii(tag uint16, s string) testEntry {
	return raw(tag, exifblock.FormatASCII, uint32(len(s)+1), append([]byte(s), 0))
}

func undefined(tag uint16, b []byte) testEntry {
	return raw(tag, exifblock.FormatUndefined, uint32(len(b)), b)
}

func byteVals(tag uint16, b ...byte) testEntry {
	return raw(tag, exifblock.FormatByte, uint32(len(b)), b)
}

func short(tag uint16, vals ...uint16) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatShort, count: uint32(len(vals)), enc: func(order binary.ByteOrder) []byte {
		var b []byte
		for _, v := range vals {
			b = appendOrder(order).AppendUint16(b, v)
		}
		return b
	}}
}

func sshort(tag uint16, vals ...int16) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatSignedShort, count: uint32(len(vals)), enc: func(order binary.ByteOrder) []byte {
		var b []byte
		for _, v := range vals {
			b = appendOrder(order).AppendUint16(b, uint16(v))
		}
		return b
	}}
}

func long(tag uint16, vals ...uint32) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatLong, count: uint32(len(vals)), enc: func(order binary.ByteOrder) []byte {
		var b []byte
		for _, v := range vals {
			b = appendOrder(order).AppendUint32(b, v)
		}
		return b
	}}
}

func slong(tag uint16, vals ...int32) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatSignedLong, count: uint32(len(vals)), enc: func(order binary.ByteOrder) []byte {
		var b []byte
		for _, v := range vals {
			b = appendOrder(order).AppendUint32(b, uint32(v))
		}
		return b
	}}
}

// rational takes numerator, denominator pairs.
func rational(tag uint16, pairs ...uint32) testEntry {
	e := long(tag, pairs...)
	e.format = exifblock.FormatRational
	e.count = uint32(len(pairs) / 2)
	return e
}

func srational(tag uint16, pairs ...int32) testEntry {
	e := slong(tag, pairs...)
	e.format = exifblock.FormatSignedRational
	e.count = uint32(len(pairs) / 2)
	return e
}

func float(tag uint16, vals ...float32) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatFloat, count: uint32(len(vals)), enc: func(order binary.ByteOrder) []byte {
		var b []byte
		for _, v := range vals {
			b = appendOrder(order).AppendUint32(b, math.Float32bits(v))
		}
		return b
	}}
}

func double(tag uint16, vals ...float64) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatDouble, count: uint32(len(vals)), enc: func(order binary.ByteOrder) []byte {
		var b []byte
		for _, v := range vals {
			b = appendOrder(order).AppendUint64(b, math.Float64bits(v))
		}
		return b
	}}
}

func subDir(tag uint16, d *testDir) testEntry {
	return testEntry{tag: tag, format: exifblock.FormatLong, count: 1, sub: d}
}

// newTestDocument returns a block with IFD0, an Exif sub directory,
// a GPS directory and IFD1 with a thumbnail.
func newTestDocument(order binary.ByteOrder) []byte {
	gps := &testDir{
		entries: []testEntry{
			byteVals(0x00, 2, 3, 0, 0),
			ascii(0x01, "S"),
			rational(0x02, 2, 1, 30, 1, 0, 1),
			ascii(0x03, "E"),
			rational(0x04, 10, 1, 15, 1, 36, 1),
		},
	}
	exif := &testDir{
		entries: []testEntry{
			rational(0x829a, 1, 250),
			ascii(uint16(exifblock.TagDateTimeOriginal), "2023:06:01 14:30:00"),
			ascii(0x9011, "+02:00"),
			srational(0x9204, -1, 3),
			undefined(uint16(exifblock.TagUserComment), []byte("ASCII\x00\x00\x00Hello")),
			short(uint16(exifblock.TagPixelXDimension), 4000),
			long(uint16(exifblock.TagPixelYDimension), 3000),
		},
	}
	ifd1 := &testDir{
		entries: []testEntry{
			short(0x0103, 6),
		},
		thumbnail: []byte{0xff, 0xd8, 1, 2, 3, 4, 5, 6, 7, 8, 0xff, 0xd9},
	}
	ifd0 := &testDir{
		entries: []testEntry{
			ascii(uint16(exifblock.TagMake), "Canon"),
			ascii(uint16(exifblock.TagModel), "Canon EOS 5D"),
			short(uint16(exifblock.TagOrientation), 6),
			rational(uint16(exifblock.TagXResolution), 72, 1),
			rational(uint16(exifblock.TagYResolution), 72, 1),
			short(uint16(exifblock.TagResolutionUnit), 2),
			ascii(uint16(exifblock.TagDateTime), "2023:06:01 14:30:00"),
			subDir(uint16(exifblock.TagExifOffset), exif),
			subDir(uint16(exifblock.TagGPSInfo), gps),
		},
		next: ifd1,
	}

	return buildBlock(order, ifd0)
}

func appendOrder(order binary.ByteOrder) binary.AppendByteOrder {
	return order.(binary.AppendByteOrder)
}
