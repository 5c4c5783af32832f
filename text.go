// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Character code prefixes of UserComment and the GPS text tags.
var (
	charCodeASCII     = []byte("ASCII\x00\x00\x00")
	charCodeUnicode   = []byte("UNICODE\x00")
	charCodeJIS       = []byte("JIS\x00\x00\x00\x00\x00")
	charCodeUndefined = make([]byte, charCodeLen)
)

const charCodeLen = 8

func hasCharCode(t TagDescriptor) bool {
	switch t.Namespace {
	case NamespaceGPS:
		return t.Tag == TagGPSProcessingMethod || t.Tag == TagGPSAreaInformation
	default:
		return t.Tag == TagUserComment
	}
}

// decodeText decodes b up to the first NUL.
// Anything not valid UTF-8 is taken to be ISO-8859-1.
func (w *dirWalker) decodeText(b []byte) string {
	b = trimNul(b)
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := w.iso88591CharsetDecoder.Bytes(b)
	if err != nil {
		// Not possible for ISO-8859-1, all bytes map to a rune.
		return string(b)
	}
	return string(s)
}

// decodeCharCodeText decodes text with a leading 8 byte character code.
// It returns false if b does not start with a known code.
func (w *dirWalker) decodeCharCodeText(b []byte) (string, bool) {
	if len(b) < charCodeLen {
		return "", false
	}
	code, b := b[:charCodeLen], b[charCodeLen:]

	switch {
	case bytes.Equal(code, charCodeASCII), bytes.Equal(code, charCodeUndefined):
		return w.decodeText(b), true
	case bytes.Equal(code, charCodeUnicode):
		endianness := unicode.LittleEndian
		if w.byteOrder == binary.BigEndian {
			endianness = unicode.BigEndian
		}
		s, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder().Bytes(b)
		if err != nil {
			return w.decodeText(b), true
		}
		return string(trimNul(s)), true
	case bytes.Equal(code, charCodeJIS):
		s, err := japanese.ISO2022JP.NewDecoder().Bytes(trimNul(b))
		if err != nil {
			return w.decodeText(b), true
		}
		return string(s), true
	}

	return "", false
}
