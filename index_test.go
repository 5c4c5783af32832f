// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock_test

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/magnifier/exifblock"
)

func TestLookup(t *testing.T) {
	c := qt.New(t)

	// Orientation in IFD0, the Exif sub directory and IFD1.
	data := buildBlock(binary.BigEndian, &testDir{
		entries: []testEntry{
			short(uint16(exifblock.TagOrientation), 1),
			subDir(uint16(exifblock.TagExifOffset), &testDir{entries: []testEntry{
				short(uint16(exifblock.TagOrientation), 2),
			}}),
		},
		next: &testDir{entries: []testEntry{
			short(uint16(exifblock.TagOrientation), 3),
		}},
	})

	b := decode(c, data)
	c.Assert(b.Len(), qt.Equals, 3)

	for i, want := range []uint16{1, 2, 3} {
		e, found := b.LookupEntry("Orientation", i, true)
		c.Assert(found, qt.IsTrue)
		c.Assert(e.Value.Val, qt.Equals, want)
		c.Assert(binary.BigEndian.Uint16(b.Bytes()[e.Offset:]), qt.Equals, want)
	}

	_, found := b.Lookup("Orientation", 3, true)
	c.Assert(found, qt.IsFalse)

	_, found = b.Lookup("orientation", 0, true)
	c.Assert(found, qt.IsFalse)
	v, found := b.Lookup("orientation", 1, false)
	c.Assert(found, qt.IsTrue)
	c.Assert(v.Val, qt.Equals, uint16(2))

	var names []string
	for e := range b.Entries() {
		names = append(names, e.Name)
		break
	}
	c.Assert(names, qt.DeepEquals, []string{"Orientation"})
}

func TestField(t *testing.T) {
	c := qt.New(t)

	data := buildBlock(binary.LittleEndian, &testDir{entries: []testEntry{
		ascii(uint16(exifblock.TagModel), "X100V"),
		short(0x0102, 8, 8, 8),
		sshort(0x0150, -3),
		long(0x0151, 42),
		byteVals(0x0152, 1, 2),
		rational(uint16(exifblock.TagXResolution), 1, 3),
		rational(uint16(exifblock.TagYResolution), 1, 0),
		rational(0x0153, 1, 2, 3, 4),
		double(0x0154, 1.5),
	}})

	b := decode(c, data)

	for _, test := range []struct {
		name  string
		want  string
		found bool
	}{
		{"Model", "X100V", true},
		{"BitsPerSample", "8 8 8", true},
		{exifblock.ResolvePrimaryTag(0x0150).Name, "-3", true},
		{exifblock.ResolvePrimaryTag(0x0151).Name, "42", true},
		{exifblock.ResolvePrimaryTag(0x0152).Name, "1 2", true},
		{"XResolution", "0.33", true},
		{"YResolution", "", false},
		{exifblock.ResolvePrimaryTag(0x0153).Name, "", false},
		{exifblock.ResolvePrimaryTag(0x0154).Name, "", false},
		{"Make", "", false},
	} {
		got, found := b.Field(test.name)
		c.Assert(found, qt.Equals, test.found, qt.Commentf("%s", test.name))
		c.Assert(got, qt.Equals, test.want, qt.Commentf("%s", test.name))
	}
}

func TestNumField(t *testing.T) {
	c := qt.New(t)

	data := buildBlock(binary.BigEndian, &testDir{entries: []testEntry{
		short(uint16(exifblock.TagOrientation), 6),
		short(0x0102, 8, 8, 8),
		sshort(0x0150, -3),
		slong(0x0151, -70000),
		byteVals(0x0152, 7),
		rational(uint16(exifblock.TagXResolution), 1, 4),
		rational(uint16(exifblock.TagYResolution), 1, 0),
		srational(0x0153, -1, 2),
		float(0x0154, 0.5),
		double(0x0155, 0.25),
		rational(0x0156, 1, 1, 2, 1),
		ascii(uint16(exifblock.TagModel), "X100V"),
		subDir(uint16(exifblock.TagGPSInfo), &testDir{entries: []testEntry{
			ascii(0x01, "S"),
			rational(0x02, 2, 1, 30, 1, 0, 1),
			ascii(0x03, "W"),
			rational(0x04, 10, 1, 30, 0, 0, 1),
		}}),
	}})

	b := decode(c, data)

	for _, test := range []struct {
		name  string
		want  float64
		found bool
	}{
		{"Orientation", 6, true},
		{"BitsPerSample", 0, false},
		{exifblock.ResolvePrimaryTag(0x0150).Name, -3, true},
		{exifblock.ResolvePrimaryTag(0x0151).Name, -70000, true},
		{exifblock.ResolvePrimaryTag(0x0152).Name, 7, true},
		{"XResolution", 0.25, true},
		{"YResolution", 0, false},
		{exifblock.ResolvePrimaryTag(0x0153).Name, -0.5, true},
		{exifblock.ResolvePrimaryTag(0x0154).Name, 0.5, true},
		{exifblock.ResolvePrimaryTag(0x0155).Name, 0.25, true},
		{exifblock.ResolvePrimaryTag(0x0156).Name, 0, false},
		{"Model", 0, false},
		{"GPSLatitude", 2.5, true},
		{"GPSLongitude", 0, false},
	} {
		got, found := b.NumField(test.name)
		c.Assert(found, qt.Equals, test.found, qt.Commentf("%s", test.name))
		c.Assert(got, qt.Equals, test.want, qt.Commentf("%s", test.name))
	}

	// The longitude has a zero denominator.
	_, _, found := b.LatLong()
	c.Assert(found, qt.IsFalse)
}

func TestLatLongSouth(t *testing.T) {
	c := qt.New(t)

	for _, order := range byteOrders {
		b := decode(c, newTestDocument(order))
		lat, _, found := b.LatLong()
		c.Assert(found, qt.IsTrue)
		c.Assert(lat, qt.Equals, -2.5)
	}
}
