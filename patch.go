// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"image"
	"math"
	"time"
)

// Denominator used for resolutions with a fractional part.
const resolutionDenominator = 100000

// SaveIntent describes how the image the block belongs to is about to be saved.
type SaveIntent struct {
	// KeepMetadata is set if the block is to be embedded in the saved file.
	KeepMetadata bool

	// Transformed is set if the pixels were rotated, flipped, cropped or resized.
	Transformed bool

	// Width and Height of the saved image.
	Width, Height uint32

	// Resolution of the saved image, if known.
	Resolution *Resolution

	// Image is the saved image, used to regenerate the embedded thumbnail.
	Image image.Image

	// Now is the modification time to store. Defaults to time.Now().
	Now time.Time
}

// Apply updates the block for the saved image described by intent
// and returns the bytes to embed, nil if no metadata should be embedded.
func (b *Block) Apply(intent SaveIntent) []byte {
	if !intent.KeepMetadata {
		return nil
	}

	if (intent.Transformed || b.Orientation() != 1) && intent.Resolution != nil {
		if intent.Image != nil {
			if thumb := b.GenerateThumbnail(intent.Image); thumb != nil {
				b.PatchThumbnail(thumb)
			}
		}
		now := intent.Now
		if now.IsZero() {
			now = time.Now()
		}
		b.PatchExifData(intent.Resolution.X, intent.Resolution.Y, intent.Width, intent.Height, now)
	}

	return b.Bytes()
}

// PatchExifData updates the resolution, orientation, modification time and
// dimensions of the main image.
func (b *Block) PatchExifData(xres, yres float64, width, height uint32, now time.Time) {
	b.PatchResolution(xres, yres)
	b.PatchOrientation()
	b.PatchDateTime(now)
	b.PatchDimensions(width, height)
}

// PatchResolution sets XResolution and YResolution.
// Integer values are stored with a denominator of 1, others with
// a denominator of 100000.
func (b *Block) PatchResolution(x, y float64) {
	b.patchRational("XResolution", x)
	b.patchRational("YResolution", y)
}

// PatchOrientation resets Orientation to 1 (top left),
// used after the orientation has been applied to the pixels.
func (b *Block) PatchOrientation() {
	e, found := b.LookupEntry("Orientation", 0, true)
	if !found {
		return
	}
	if !b.putUint(e, 1) {
		b.opts.Warnf("exifblock: Orientation of format %s not patched", e.Value.Format)
	}
}

// PatchDateTime sets DateTime to t if it fits the space of the current value.
func (b *Block) PatchDateTime(t time.Time) {
	e, found := b.LookupEntry("DateTime", 0, true)
	if !found {
		return
	}
	s := t.Format(dateTimeLayout)
	if e.Value.Format != FormatASCII || len(s) > e.Value.Count {
		b.opts.Warnf("exifblock: DateTime %q does not fit in %d bytes", s, e.Value.Count)
		return
	}
	field := b.buf[e.Offset : e.Offset+e.Value.Count]
	n := copy(field, s)
	clear(field[n:])
}

// PatchDimensions sets the pixel dimensions of the main image,
// PixelXDimension and PixelYDimension if set, else ImageWidth and ImageLength.
func (b *Block) PatchDimensions(width, height uint32) {
	b.patchDimension(width, "PixelXDimension", "ImageWidth")
	b.patchDimension(height, "PixelYDimension", "ImageLength")
}

func (b *Block) patchDimension(v uint32, names ...string) {
	for _, name := range names {
		e, found := b.LookupEntry(name, 0, true)
		if !found {
			continue
		}
		if !b.putUint(e, v) {
			b.opts.Warnf("exifblock: %s %d does not fit format %s", name, v, e.Value.Format)
		}
		return
	}
}

// PatchThumbnail replaces the embedded thumbnail with p.
// The size of the thumbnail cannot change; if len(p) is not
// ThumbnailSize the block is left unchanged and false is returned.
func (b *Block) PatchThumbnail(p []byte) bool {
	if b.ThumbnailSize == 0 || len(p) != b.ThumbnailSize || b.ThumbnailOffset+b.ThumbnailSize > b.Length {
		return false
	}
	copy(b.buf[b.ThumbnailOffset:], p)
	return true
}

func (b *Block) patchRational(name string, v float64) {
	e, found := b.LookupEntry(name, 0, true)
	if !found {
		return
	}

	var limit float64
	switch e.Value.Format {
	case FormatRational:
		limit = math.MaxUint32
	case FormatSignedRational:
		limit = math.MaxInt32
	}
	if limit == 0 || e.Value.Count < 1 {
		b.opts.Warnf("exifblock: %s of format %s not patched", name, e.Value.Format)
		return
	}

	if math.IsNaN(v) || v < 0 || v > limit {
		b.opts.Warnf("exifblock: %s %v out of range", name, v)
		return
	}

	num, den := math.Round(v), 1.0
	if v != math.Trunc(v) {
		if n := math.Round(v * resolutionDenominator); n <= limit {
			num, den = n, resolutionDenominator
		}
	}
	if num > limit {
		b.opts.Warnf("exifblock: %s %v out of range", name, v)
		return
	}

	b.ByteOrder.PutUint32(b.buf[e.Offset:], uint32(num))
	b.ByteOrder.PutUint32(b.buf[e.Offset+4:], uint32(den))
}

// putUint writes v to the first component of e.
func (b *Block) putUint(e Entry, v uint32) bool {
	if e.Value.Count < 1 {
		return false
	}
	switch e.Value.Format {
	case FormatShort:
		if v > math.MaxUint16 {
			return false
		}
		b.ByteOrder.PutUint16(b.buf[e.Offset:], uint16(v))
	case FormatLong:
		b.ByteOrder.PutUint32(b.buf[e.Offset:], v)
	default:
		return false
	}
	return true
}
