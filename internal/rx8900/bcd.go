package rx8900

import "fmt"

// DecodeBCD converts a packed BCD byte to an integer.
func DecodeBCD(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// EncodeBCD converts v in [0, 99] to packed BCD.
func EncodeBCD(v int) (byte, error) {
	if v < 0 || v > 99 {
		return 0, fmt.Errorf("%w: %d is not a two-digit BCD value", ErrOutOfRange, v)
	}
	return byte(v/10)<<4 | byte(v%10), nil
}
