// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package exifblock decodes the TIFF structured metadata block embedded in JPEG, WebP,
// PNG and BMP files, and patches a fixed set of its fields in place.
package exifblock

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

const (
	// KeyExifLength is the Document key holding the declared length of the block.
	KeyExifLength = "ExifLength"
	// KeyThumbnail is the Document key holding the base64 encoded embedded thumbnail.
	KeyThumbnail = "Thumbnail"
	// KeyNextIFD is the Document key holding the directory chained after another.
	KeyNextIFD = "NextIFD"
)

const (
	// All offsets inside the block are relative to the byte order marker
	// which follows the 6 byte signature.
	offsetBase = 6
	headerLen  = offsetBase + 8

	tiffVersion = 0x2a

	minFirstIFDOffset = 8
	maxFirstIFDOffset = 32000
)

var exifSignature = []byte("Exif\x00\x00")

var (
	// ErrInvalidHeader is returned (wrapped) when the block header is missing or corrupt.
	ErrInvalidHeader = errors.New("exifblock: corrupt header")

	// ErrInvalidStructure is returned (wrapped) when a directory, entry or value
	// pointer in the block is corrupt.
	ErrInvalidStructure = errors.New("exifblock: corrupt structure")
)

// IsInvalidFormat reports whether err (or any error it wraps) was caused by a
// corrupt or unsupported metadata block.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidHeader) || errors.Is(err, ErrInvalidStructure)
}

func newHeaderErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidHeader, fmt.Sprintf(format, args...))
}

func newStructureErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStructure, fmt.Sprintf(format, args...))
}

// MakerNoteFunc decodes the MakerNote payload b of a camera from vendor cameraMake.
// The returned value replaces the default text decoding of the tag.
type MakerNoteFunc func(cameraMake string, b []byte, byteOrder binary.ByteOrder) (any, error)

// Options contains the options for the Decode function.
type Options struct {
	// Data holds the metadata block, starting with the "Exif\x00\x00" signature.
	// Decode works on a private copy.
	Data []byte

	// Length is the declared length of the block.
	// If not set, len(Data) is used. It must not exceed len(Data).
	Length int

	// LimitNumTags is the maximum number of directory entries to decode,
	// counted over all directories.
	// Default value is 5000. Blocks with more entries, valid or not, fail
	// to decode with ErrInvalidStructure; set a higher limit to accept them.
	LimitNumTags int

	// If set, MakerNote is called for MakerNote tags once the camera make is known.
	MakerNote MakerNoteFunc

	// Warnf will be called for each warning.
	Warnf func(string, ...any)
}

// Document is the nested representation of the decoded directories.
// Tag names map to a Value, sub directory pointer tags and KeyNextIFD map to
// a nested Document.
type Document map[string]any

// Block is a decoded metadata block.
// The decoded Document and entries are never changed after Decode;
// the Patch methods only change the bytes returned by Bytes.
type Block struct {
	// Length is the declared length of the block.
	Length int

	// ByteOrder is the byte order of all multi byte values in the block.
	ByteOrder binary.ByteOrder

	// Make is the camera make, if present.
	Make string

	// LastReferenced is the end of the last byte used by any directory or value.
	// Anything between LastReferenced and Length is not referenced by any tag.
	LastReferenced int

	// ThumbnailOffset is the position of the embedded thumbnail in Bytes, or 0.
	ThumbnailOffset int

	// ThumbnailSize is the number of bytes reserved for the embedded thumbnail.
	ThumbnailSize int

	// ThumbnailDirOffset is the position in Bytes of the directory
	// holding the thumbnail pointer tags, or 0.
	ThumbnailDirOffset int

	Document Document

	entries []Entry
	buf     []byte
	opts    Options
}

// Bytes returns the block bytes, including any applied patches.
// The length never changes.
func (b *Block) Bytes() []byte {
	return b.buf
}

// Decode decodes the metadata block in opts.Data.
// Any error returned is wrapping ErrInvalidHeader or ErrInvalidStructure,
// and no partial result is returned.
func Decode(opts Options) (b *Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = errFromRecover(r)
		}
	}()

	if opts.Length == 0 {
		opts.Length = len(opts.Data)
	}
	if opts.LimitNumTags == 0 {
		const defaultLimitNumTags = 5000
		opts.LimitNumTags = defaultLimitNumTags
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}

	if opts.Length < 0 || opts.Length > len(opts.Data) {
		return nil, newHeaderErrorf("declared length %d exceeds data length %d", opts.Length, len(opts.Data))
	}
	if opts.Length < headerLen {
		return nil, newHeaderErrorf("block of %d bytes is too short", opts.Length)
	}

	data := bytes.Clone(opts.Data)
	opts.Data = nil

	if !bytes.Equal(data[:offsetBase], exifSignature) {
		return nil, newHeaderErrorf("no Exif signature")
	}

	var byteOrder binary.ByteOrder
	switch string(data[offsetBase : offsetBase+2]) {
	case "MM":
		byteOrder = binary.BigEndian
	case "II":
		byteOrder = binary.LittleEndian
	default:
		return nil, newHeaderErrorf("invalid byte order marker %q", data[offsetBase:offsetBase+2])
	}

	b = &Block{
		Length:    opts.Length,
		ByteOrder: byteOrder,
		buf:       data,
		opts:      opts,
	}

	r := &blockReader{
		b:         data,
		end:       opts.Length,
		byteOrder: byteOrder,
	}

	if v := r.read2(offsetBase + 2); v != tiffVersion {
		return nil, newHeaderErrorf("invalid version marker 0x%x", v)
	}

	firstOffset := r.read4(offsetBase + 4)
	if firstOffset < minFirstIFDOffset || firstOffset > maxFirstIFDOffset {
		return nil, newHeaderErrorf("suspicious offset %d of first IFD", firstOffset)
	}

	w := newDirWalker(r, b, opts)
	doc, err := w.decodeDir(offsetBase + int(firstOffset))
	if err != nil {
		return nil, err
	}

	if w.thumbOffset != 0 && w.thumbSize != 0 {
		start := offsetBase + w.thumbOffset
		if start+w.thumbSize <= b.Length {
			b.ThumbnailOffset = start
			b.ThumbnailSize = w.thumbSize
			doc[KeyThumbnail] = base64.StdEncoding.EncodeToString(data[start : start+w.thumbSize])
		}
	}
	doc[KeyExifLength] = b.Length

	b.Document = doc

	return b, nil
}

func errFromRecover(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("unknown panic: %v", r)
}

func newDirWalker(r *blockReader, b *Block, opts Options) *dirWalker {
	return &dirWalker{
		blockReader:            r,
		block:                  b,
		opts:                   opts,
		iso88591CharsetDecoder: charmap.ISO8859_1.NewDecoder(),
	}
}
