// Package ui holds the editing surface model: color swatches, hex input and
// the toolbar state reflecting the style under the selection.
package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("ui: invalid hex color")

// Palette24 is the fixed swatch grid offered by the color picker.
var Palette24 = [24]string{
	"#FFFFFF", "#8E8E93", "#48484A", "#000000",
	"#FF3B30", "#FF2D55", "#E11D48", "#BE123C",
	"#FF9500", "#FFCC00", "#F59E0B", "#D97706",
	"#34C759", "#10B981", "#059669", "#064E3B",
	"#007AFF", "#5AC8FA", "#0EA5E9", "#0369A1",
	"#AF52DE", "#5856D6", "#7C3AED", "#4338CA",
}

// ParseHex reads "RRGGBB" with an optional leading '#'.
func ParseHex(s string) (int, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return int(v), nil
}

func FormatHex(rgb int) string {
	return fmt.Sprintf("#%06X", rgb&0xFFFFFF)
}

// Swatch returns the palette index of rgb, or -1.
func Swatch(rgb int) int {
	want := FormatHex(rgb)
	for i, hex := range Palette24 {
		if hex == want {
			return i
		}
	}
	return -1
}

// SwatchColor returns the RGB value of palette entry i.
func SwatchColor(i int) (int, error) {
	if i < 0 || i >= len(Palette24) {
		return 0, fmt.Errorf("ui: swatch %d out of range", i)
	}
	return ParseHex(Palette24[i])
}
