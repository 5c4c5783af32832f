// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifblock

import (
	"encoding"
	"fmt"
	"strings"
	"unicode"
)

var _ encoding.TextMarshaler = Rat[int32]{}

// Rat is a rational number as stored in the block.
// It's not normalized, Num and Den are kept as read.
type Rat[T int32 | uint32] struct {
	Num T
	Den T
}

// Float64 returns the float64 representation of the rational number.
// It returns false if the denominator is zero.
func (r Rat[T]) Float64() (float64, bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r Rat[T]) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Rat[T]) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

type float64Provider interface {
	Float64() (float64, bool)
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

// trimNul returns b up to, not including, the first NUL byte.
func trimNul(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
