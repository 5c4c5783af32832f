// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"golang.org/x/text/encoding"
)

const (
	dirEntrySize = 12

	// Directories may be nested (sub IFD pointers) or chained (next IFD pointer)
	// at most this many levels deep, counting IFD0.
	maxNestingLevel = 4

	maxGPSComponents = 32768
)

// dirWalker decodes the directories of one block.
// A new dirWalker is created for every Decode call.
type dirWalker struct {
	*blockReader
	block *Block
	opts  Options

	level   int
	numTags int

	// Relative to offsetBase, as stored in the block.
	thumbOffset int
	thumbSize   int

	iso88591CharsetDecoder *encoding.Decoder
}

// A directory entry is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the format
//   - 4 bytes for the number of components of the specified format
//   - 4 bytes for the value itself, if it fits, otherwise for an offset to where the value is stored;
//     this could be a pointer to the beginning of another IFD.
type dirEntry struct {
	tag       TagDescriptor
	format    Format
	count     int
	byteCount int
	valuePtr  int
}

func dirEntryAddr(dirStart, i int) int {
	return dirStart + 2 + dirEntrySize*i
}

func (w *dirWalker) enter() error {
	w.level++
	if w.level > maxNestingLevel {
		return newStructureErrorf("maximum directory nesting of %d exceeded", maxNestingLevel)
	}
	return nil
}

func (w *dirWalker) leave() {
	w.level--
}

func (w *dirWalker) reference(end int) {
	if end > w.block.LastReferenced {
		w.block.LastReferenced = end
	}
}

func (w *dirWalker) decodeDir(dirStart int) (Document, error) {
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	numEntries := int(w.read2(dirStart))
	dirEnd := dirEntryAddr(dirStart, numEntries)

	if dirEnd+4 > w.end {
		// jhead 1.3 and earlier truncated the block by 2 or 4 bytes
		// when trimming thumbnails.
		if dirEnd+2 != w.end && dirEnd != w.end {
			return nil, newStructureErrorf("illegally sized directory at offset %d", dirStart)
		}
	}
	w.reference(dirEnd)

	doc := make(Document)

	for i := 0; i < numEntries; i++ {
		e, err := w.readEntry(dirEntryAddr(dirStart, i), NamespacePrimary)
		if err != nil {
			return nil, err
		}

		switch e.tag.Tag {
		case TagGPSInfo:
			start, err := w.subDirStart(e)
			if err != nil {
				return nil, err
			}
			sub, err := w.decodeGPSDir(start)
			if err != nil {
				return nil, err
			}
			doc[e.tag.Name] = sub
			continue
		case TagExifOffset, TagInteropOffset:
			start, err := w.subDirStart(e)
			if err != nil {
				return nil, err
			}
			sub, err := w.decodeDir(start)
			if err != nil {
				return nil, err
			}
			doc[e.tag.Name] = sub
			continue
		case TagThumbnailOffset:
			w.thumbOffset = w.readInt(e)
			w.block.ThumbnailDirOffset = dirStart
		case TagThumbnailLength:
			w.thumbSize = w.readInt(e)
		}

		w.addValue(doc, e)
	}

	// In addition to the sub directory pointer tags, a directory
	// may link to a next directory right after its last entry.
	if dirEnd+4 <= w.end {
		if next := int(w.read4(dirEnd)); next != 0 {
			start := offsetBase + next
			if start+2 <= w.end {
				sub, err := w.decodeDir(start)
				if err != nil {
					return nil, err
				}
				doc[KeyNextIFD] = sub
			}
		}
	}

	return doc, nil
}

func (w *dirWalker) decodeGPSDir(dirStart int) (Document, error) {
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	numEntries := int(w.read2(dirStart))
	dirEnd := dirEntryAddr(dirStart, numEntries)
	if dirEnd > w.end {
		return nil, newStructureErrorf("illegally sized GPS directory at offset %d", dirStart)
	}
	w.reference(dirEnd)

	doc := make(Document)

	for i := 0; i < numEntries; i++ {
		e, err := w.readEntry(dirEntryAddr(dirStart, i), NamespaceGPS)
		if err != nil {
			return nil, err
		}
		w.addValue(doc, e)
	}

	return doc, nil
}

func (w *dirWalker) readEntry(addr int, ns Namespace) (dirEntry, error) {
	w.numTags++
	if w.numTags > w.opts.LimitNumTags {
		return dirEntry{}, newStructureErrorf("more than %d tags", w.opts.LimitNumTags)
	}

	var e dirEntry
	id := w.read2(addr)
	if ns == NamespaceGPS {
		e.tag = ResolveGPSTag(id)
	} else {
		e.tag = ResolvePrimaryTag(id)
	}

	e.format = Format(w.read2(addr + 2))
	if !e.format.IsValid() {
		return e, newStructureErrorf("illegal number format %d for tag %s", e.format, e.tag.Name)
	}

	count := w.read4(addr + 4)
	if ns == NamespaceGPS && (count < 1 || count > maxGPSComponents) {
		return e, newStructureErrorf("bad component count %d for tag %s", count, e.tag.Name)
	}

	byteCount := uint64(count) * uint64(BytesPerFormat(e.format))
	if byteCount > 4 {
		offset := uint64(w.read4(addr + 8))
		if offset+byteCount > uint64(w.end-offsetBase) {
			return e, newStructureErrorf("illegal value pointer for tag %s", e.tag.Name)
		}
		e.valuePtr = offsetBase + int(offset)
	} else {
		e.valuePtr = addr + 8
	}
	e.count = int(count)
	e.byteCount = int(byteCount)

	w.reference(e.valuePtr + e.byteCount)

	return e, nil
}

func (w *dirWalker) subDirStart(e dirEntry) (int, error) {
	start := offsetBase + int(w.read4(e.valuePtr))
	if start > w.end {
		return 0, newStructureErrorf("illegal sub directory link for tag %s", e.tag.Name)
	}
	return start, nil
}

// readInt reads the first component of an integer entry.
// Negative and non integer values read as 0.
func (w *dirWalker) readInt(e dirEntry) int {
	var v int64
	switch e.format {
	case FormatByte:
		v = int64(w.read1(e.valuePtr))
	case FormatSignedByte:
		v = int64(w.read1s(e.valuePtr))
	case FormatShort:
		v = int64(w.read2(e.valuePtr))
	case FormatSignedShort:
		v = int64(w.read2s(e.valuePtr))
	case FormatLong:
		v = int64(w.read4(e.valuePtr))
	case FormatSignedLong:
		v = int64(w.read4s(e.valuePtr))
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

func (w *dirWalker) addValue(doc Document, e dirEntry) {
	v, indexable := w.convertValue(e)
	doc[e.tag.Name] = v

	if !indexable {
		v = Value{Format: v.Format, Count: v.Count, Val: LongData}
	}
	w.block.entries = append(w.block.entries, Entry{Name: e.tag.Name, Value: v, Offset: e.valuePtr})
}
