package lights

import (
	"fmt"
	"strconv"
	"strings"
)

// FlashMode selects how a light request blinks.
type FlashMode int

const (
	// FlashNone renders the color solid.
	FlashNone FlashMode = iota
	// FlashTimed plays FlashOnMS/FlashOffMS through the blink engine.
	FlashTimed
	// FlashHardware is accepted but rendered solid on this hardware.
	FlashHardware
)

// String returns the lowercase name used in config, logs and the API.
func (m FlashMode) String() string {
	switch m {
	case FlashNone:
		return "none"
	case FlashTimed:
		return "timed"
	case FlashHardware:
		return "hardware"
	default:
		return fmt.Sprintf("flash(%d)", int(m))
	}
}

// ParseFlashMode converts a flash mode name into a FlashMode.
func ParseFlashMode(s string) (FlashMode, error) {
	switch s {
	case "", "none":
		return FlashNone, nil
	case "timed":
		return FlashTimed, nil
	case "hardware":
		return FlashHardware, nil
	default:
		return FlashNone, fmt.Errorf("unknown flash mode %q", s)
	}
}

// State is a single light request. It is replaced as a whole on every update.
type State struct {
	Color      uint32 // 0xAARRGGBB, alpha is ignored
	FlashMode  FlashMode
	FlashOnMS  uint32
	FlashOffMS uint32
}

// IsLit reports whether any of the RGB channels is non-zero.
func IsLit(s State) bool {
	return s.Color&0x00ffffff != 0
}

// Brightness collapses the RGB color into a single 0-255 luma value.
// The weights and the truncating shift must stay as they are; existing
// panel calibration depends on them.
func Brightness(s State) int {
	color := s.Color & 0x00ffffff
	r := int((color >> 16) & 0xff)
	g := int((color >> 8) & 0xff)
	b := int(color & 0xff)
	return (77*r + 150*g + 29*b) >> 8
}

// timedFlash returns the on/off durations when s should be played by the
// blink engine, and ok=false when it should be rendered solid.
func timedFlash(s State) (onMS, offMS uint32, ok bool) {
	if s.FlashMode != FlashTimed {
		return 0, 0, false
	}
	if s.FlashOnMS == 0 || s.FlashOffMS == 0 {
		return 0, 0, false
	}
	return s.FlashOnMS, s.FlashOffMS, true
}

// ParseColor accepts "#RRGGBB", "#AARRGGBB" or "0xAARRGGBB". A color
// without alpha gets 0xff.
func ParseColor(s string) (uint32, error) {
	var digits string
	switch {
	case strings.HasPrefix(s, "#"):
		digits = s[1:]
		if len(digits) != 6 && len(digits) != 8 {
			return 0, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
		}
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = s[2:]
		if len(digits) == 0 || len(digits) > 8 {
			return 0, fmt.Errorf("color %q: want 0xAARRGGBB", s)
		}
	default:
		return 0, fmt.Errorf("color %q: want #RRGGBB or 0xAARRGGBB", s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	color := uint32(v)
	if strings.HasPrefix(s, "#") && len(digits) == 6 {
		color |= 0xff000000
	}
	return color, nil
}

// FormatColor renders color as 0xAARRGGBB.
func FormatColor(color uint32) string {
	return fmt.Sprintf("0x%08x", color)
}
