// Package bitops provides branch-minimal primitives over 32-bit bitmaps:
// population count, trailing zeros, high-bit fills, wrapping rotation and
// sparse-to-packed index decoding.
//
// All functions treat their input as a plain uint32 pattern, so the sign bit
// (bit 31) is an ordinary slot.
package bitops

import (
	"github.com/hideo55/go-popcount"
)

const (
	Width    = 32
	WidthMax = Width - 1 // highest bit position

	deBruijn32 uint32 = 0x077C_B531
)

// deBruijnIdx32 maps the top 5 bits of (x & -x) * deBruijn32 to the position
// of the isolated bit.
var deBruijnIdx32 = [Width]byte{
	0, 1, 28, 2, 29, 14, 24, 3, 30, 22, 20, 15, 25, 17, 4, 8,
	31, 27, 13, 23, 21, 19, 16, 7, 26, 12, 18, 6, 11, 5, 10, 9,
}

// Popcount returns the number of set bits in x.
func Popcount(x uint32) int {
	return int(popcount.Count(uint64(x)))
}

// TrailingZeros returns the position [0..31] of the lowest set bit in x, or 32
// when x is zero.
func TrailingZeros(x uint32) int {
	if x == 0 {
		return Width
	}

	return int(deBruijnIdx32[(x&-x)*deBruijn32>>27])
}

// FillDown sets every bit lower than the highest set bit. Values below 2^31
// round up to one less than the next power of 2; values with bit 31 set
// return all ones.
func FillDown(x uint32) uint32 {
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16

	return x
}

// HighBit returns the position [0..31] of the highest set bit, or -1 for 0.
func HighBit(x uint32) int {
	return TrailingZeros(^FillDown(x)) - 1
}

// HighBitValue isolates the highest set bit of x.
func HighBitValue(x uint32) uint32 {
	x = FillDown(x)

	return x &^ (x >> 1)
}

// RotateRight rotates x right by n bits; bits shifted off the right wrap in
// from the left. n is taken mod 32.
func RotateRight(x uint32, n int) uint32 {
	s := uint(n) & WidthMax

	return x>>s | x<<((Width-s)&WidthMax)
}

// NextSetBitWrap returns the position of the first set bit in x at or after
// position n, wrapping from bit 31 back to bit 0. Returns -1 when x is zero.
//
//	NextSetBitWrap(0b10001, 2) == 4
//	NextSetBitWrap(0b10010, 0) == 1
//	NextSetBitWrap(0b01100, 4) == 2
func NextSetBitWrap(x uint32, n int) int {
	if x == 0 {
		return -1
	}

	n &= WidthMax

	return (TrailingZeros(RotateRight(x, n)) + n) & WidthMax
}

// Rank returns the number of bits set in bitmap below position pos. pos is
// taken modulo 32.
func Rank(bitmap uint32, pos int) int {
	pos &= WidthMax

	return Popcount(bitmap & (uint32(1)<<pos - 1))
}

// PackedIndex decodes a sparse slot position into the index of its entry in a
// packed array. Returns -1 if the slot bit is clear in bitmap. slot is taken
// modulo 32.
func PackedIndex(bitmap uint32, slot int) int {
	slot &= WidthMax

	if bitmap&(uint32(1)<<slot) == 0 {
		return -1
	}

	return Rank(bitmap, slot)
}
