// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"bytes"
	"math"
	"strings"
	"time"
)

const dateTimeLayout = "2006:01:02 15:04:05"

// Resolution is the print resolution of the main image.
type Resolution struct {
	X, Y float64

	// DPI is set when the unit is inches, else it's centimeters.
	DPI bool
}

// Orientation returns the Orientation tag, 1 if not set.
func (b *Block) Orientation() int {
	if v, ok := b.NumField("Orientation"); ok {
		return int(v)
	}
	return 1
}

// Resolution returns the resolution of the main image.
// It returns false if no ResolutionUnit is set.
func (b *Block) Resolution() (Resolution, bool) {
	var res Resolution
	unit, ok := b.NumField("ResolutionUnit")
	if !ok {
		return res, false
	}
	res.DPI = unit == 2

	if x, ok := b.NumField("XResolution"); ok {
		res.X = x
	}
	if y, ok := b.NumField("YResolution"); ok {
		res.Y = y
	}
	if res.Y == 0 {
		res.Y = res.X
	}

	return res, true
}

// LatLong returns the GPS position in decimal degrees,
// negative for south and west.
func (b *Block) LatLong() (lat float64, long float64, found bool) {
	lat, ok1 := b.NumField("GPSLatitude")
	long, ok2 := b.NumField("GPSLongitude")
	ns, ok3 := b.Field("GPSLatitudeRef")
	ew, ok4 := b.Field("GPSLongitudeRef")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, 0, false
	}
	if math.IsNaN(lat) || math.IsNaN(long) {
		return 0, 0, false
	}

	if strings.Contains(ns, "S") {
		lat = -lat
	}
	if strings.Contains(ew, "W") {
		long = -long
	}

	return lat, long, true
}

// DateTimeOriginal returns the time the picture was taken,
// falling back to DateTime.
// The zero time is returned if neither is set.
func (b *Block) DateTimeOriginal() (time.Time, error) {
	s, found := b.Field("DateTimeOriginal")
	if !found {
		s, found = b.Field("DateTime")
	}
	if !found {
		return time.Time{}, nil
	}

	return time.ParseInLocation(dateTimeLayout, printableString(s), b.location())
}

func (b *Block) location() *time.Location {
	s, found := b.Field("OffsetTimeOriginal")
	if !found {
		return time.Local
	}
	t, err := time.Parse("Z07:00", printableString(s))
	if err != nil {
		return time.Local
	}
	_, offset := t.Zone()
	return time.FixedZone("", offset)
}

// Model returns the camera model.
func (b *Block) Model() string {
	s, _ := b.Field("Model")
	return printableString(s)
}

// Thumbnail returns a copy of the embedded thumbnail, nil if there is none.
func (b *Block) Thumbnail() []byte {
	if b.ThumbnailSize == 0 {
		return nil
	}
	return bytes.Clone(b.buf[b.ThumbnailOffset : b.ThumbnailOffset+b.ThumbnailSize])
}

// TrailingData returns the bytes after the last referenced byte
// up to Length. These are not used by any tag.
func (b *Block) TrailingData() []byte {
	if b.LastReferenced >= b.Length {
		return nil
	}
	return b.buf[b.LastReferenced:b.Length]
}
