package lights

import "fmt"

// Blink engine clock constants, measured on the LP5521.
const (
	patternBase    = 0x42
	patternDivisor = 67
)

// FlashPattern encodes an on/off timing as an engine1_load program.
// The returned string has no trailing newline.
func FlashPattern(onMS, offMS uint32) string {
	return fmt.Sprintf("9d8040ff%02x004000%02x000000", patternByte(onMS), patternByte(offMS))
}

// patternByte clamps to one byte so long durations cannot widen the program.
func patternByte(ms uint32) uint32 {
	v := uint64(patternBase) + uint64(ms/patternDivisor)
	if v > 0xff {
		return 0xff
	}
	return uint32(v)
}
