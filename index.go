// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Entry is a decoded tag in the flat index.
type Entry struct {
	// Name is the tag name, e.g. "XResolution".
	Name string

	Value Value

	// Offset is the position of the value in Bytes.
	Offset int
}

// Entries returns the flat index in decode order.
func (b *Block) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range b.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of entries in the flat index.
func (b *Block) Len() int {
	return len(b.entries)
}

// LookupEntry returns the occurrence'th (0 based) entry named name.
// Tags repeated in chained directories are found in decode order.
func (b *Block) LookupEntry(name string, occurrence int, caseSensitive bool) (Entry, bool) {
	for _, e := range b.entries {
		if caseSensitive && e.Name != name || !caseSensitive && !strings.EqualFold(e.Name, name) {
			continue
		}
		if occurrence == 0 {
			return e, true
		}
		occurrence--
	}
	return Entry{}, false
}

// Lookup is like LookupEntry, but returns the value only.
func (b *Block) Lookup(name string, occurrence int, caseSensitive bool) (Value, bool) {
	e, found := b.LookupEntry(name, occurrence, caseSensitive)
	return e.Value, found
}

// Field returns a display string for the first text, integer or single rational tag named name.
func (b *Block) Field(name string) (string, bool) {
	v, found := b.Lookup(name, 0, true)
	if !found {
		return "", false
	}

	switch vv := v.Val.(type) {
	case string:
		return vv, true
	case Rat[uint32]:
		return formatQuotient(vv)
	case Rat[int32]:
		return formatQuotient(vv)
	case []byte:
		return joinInts(vv), true
	case []int8:
		return joinInts(vv), true
	case uint16:
		return strconv.FormatUint(uint64(vv), 10), true
	case int16:
		return strconv.FormatInt(int64(vv), 10), true
	case uint32:
		return strconv.FormatUint(uint64(vv), 10), true
	case int32:
		return strconv.FormatInt(int64(vv), 10), true
	case []uint16:
		return joinInts(vv), true
	case []int16:
		return joinInts(vv), true
	case []uint32:
		return joinInts(vv), true
	case []int32:
		return joinInts(vv), true
	}

	return "", false
}

// NumField returns the first tag named name as a number.
// Three rationals, as used for GPS coordinates, are read as
// degrees, minutes and seconds.
func (b *Block) NumField(name string) (float64, bool) {
	v, found := b.Lookup(name, 0, true)
	if !found {
		return 0, false
	}

	switch vv := v.Val.(type) {
	case uint16:
		return float64(vv), true
	case int16:
		return float64(vv), true
	case uint32:
		return float64(vv), true
	case int32:
		return float64(vv), true
	case []byte:
		if len(vv) == 1 {
			return float64(vv[0]), true
		}
	case []int8:
		if len(vv) == 1 {
			return float64(vv[0]), true
		}
	case float32:
		return float64(vv), true
	case float64:
		return vv, true
	case Rat[uint32]:
		return vv.Float64()
	case Rat[int32]:
		return vv.Float64()
	case []Rat[uint32]:
		return degrees(vv)
	case []Rat[int32]:
		return degrees(vv)
	}

	return 0, false
}

func formatQuotient(r float64Provider) (string, bool) {
	f, ok := r.Float64()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%.2f", f), true
}

func degrees[T int32 | uint32](rats []Rat[T]) (float64, bool) {
	if len(rats) != 3 {
		return 0, false
	}
	var dms [3]float64
	for i, r := range rats {
		f, ok := r.Float64()
		if !ok {
			return 0, false
		}
		dms[i] = f
	}
	return dms[0] + dms[1]/60 + dms[2]/3600, true
}

func joinInts[T int8 | uint8 | int16 | uint16 | int32 | uint32](vals []T) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return sb.String()
}
