// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// Byte arrays longer than this are stored as a Blob and left out of the flat index.
const inlineByteLimit = 120

// Value is a decoded directory entry value.
//
// Val is one of
//   - string for STRING, UNDEFINED and UTF_8 (NUL trimmed)
//   - []byte or []int8 for BYTE and SBYTE
//   - Blob for BYTE and SBYTE arrays longer than 120 bytes
//   - uint16, int16, uint32, int32, Rat[uint32], Rat[int32], float32 or float64 if Count is 1,
//     else a slice of the same
//   - nil for NONE
//
// The LongData placeholder is used in the flat index for values left out of it.
type Value struct {
	Format Format
	Count  int
	Val    any
}

// Blob is base64 encoded binary data.
type Blob string

// Placeholder is a value stored in place of the real value.
type Placeholder string

// LongData is stored in the flat index for values that are only
// available in the Document.
const LongData Placeholder = "long data"

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
		Val   any    `json:"val"`
	}{
		Type:  v.Format.String(),
		Count: v.Count,
		Val:   v.Val,
	})
}

// convertValue decodes the value of e and reports whether
// it can be stored in the flat index as is.
func (w *dirWalker) convertValue(e dirEntry) (Value, bool) {
	v := Value{Format: e.format, Count: e.count}

	switch e.format {
	case FormatASCII, FormatUndefined, FormatUTF8:
		b := w.readBytes(e.valuePtr, e.byteCount)

		if e.tag.Tag == TagMakerNote && e.tag.Namespace == NamespacePrimary && w.opts.MakerNote != nil && w.block.Make != "" {
			note, err := w.opts.MakerNote(w.block.Make, bytes.Clone(b), w.byteOrder)
			if err == nil {
				v.Val = note
				return v, true
			}
			w.opts.Warnf("exifblock: failed to decode MakerNote for make %q: %s", w.block.Make, err)
		}

		if hasCharCode(e.tag) {
			if s, ok := w.decodeCharCodeText(b); ok {
				v.Val = s
				return v, true
			}
		}

		s := w.decodeText(b)
		if e.tag.Tag == TagMake && e.tag.Namespace == NamespacePrimary {
			w.block.Make = printableString(s)
		}
		v.Val = s
		return v, true
	case FormatByte, FormatSignedByte:
		b := w.readBytes(e.valuePtr, e.byteCount)
		if len(b) > inlineByteLimit {
			v.Val = Blob(base64.StdEncoding.EncodeToString(b))
			return v, false
		}
		if e.format == FormatByte {
			v.Val = bytes.Clone(b)
		} else {
			sb := make([]int8, len(b))
			for i, c := range b {
				sb[i] = int8(c)
			}
			v.Val = sb
		}
		return v, true
	case FormatShort:
		v.Val = readValues(e, 2, w.read2)
	case FormatSignedShort:
		v.Val = readValues(e, 2, w.read2s)
	case FormatLong:
		v.Val = readValues(e, 4, w.read4)
	case FormatSignedLong:
		v.Val = readValues(e, 4, w.read4s)
	case FormatRational:
		v.Val = readValues(e, 8, w.readRat)
	case FormatSignedRational:
		v.Val = readValues(e, 8, w.readRatSigned)
	case FormatFloat:
		v.Val = readValues(e, 4, w.read4f)
	case FormatDouble:
		v.Val = readValues(e, 8, w.read8f)
	default:
		return v, false
	}

	return v, true
}

// readValues reads e.count values of stride bytes each.
// A single value is returned as T, else as []T.
func readValues[T any](e dirEntry, stride int, read func(pos int) T) any {
	if e.count == 1 {
		return read(e.valuePtr)
	}
	vals := make([]T, e.count)
	for i := range vals {
		vals[i] = read(e.valuePtr + i*stride)
	}
	return vals
}
