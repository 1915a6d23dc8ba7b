package prefs

import (
	"fmt"
	"strings"
)

// Gravity places the memo text inside the widget.
type Gravity uint8

const (
	TopStart Gravity = iota
	TopCenter
	TopEnd
	CenterStart
	Center
	CenterEnd
	BottomStart
	BottomCenter
	BottomEnd
)

var gravityNames = [...]string{
	TopStart:     "top_start",
	TopCenter:    "top_center",
	TopEnd:       "top_end",
	CenterStart:  "center_start",
	Center:       "center",
	CenterEnd:    "center_end",
	BottomStart:  "bottom_start",
	BottomCenter: "bottom_center",
	BottomEnd:    "bottom_end",
}

// Gravities lists every value in grid order, row by row.
func Gravities() []Gravity {
	return []Gravity{TopStart, TopCenter, TopEnd, CenterStart, Center, CenterEnd, BottomStart, BottomCenter, BottomEnd}
}

func (g Gravity) Valid() bool { return int(g) < len(gravityNames) }

func (g Gravity) String() string {
	if !g.Valid() {
		return fmt.Sprintf("gravity(%d)", uint8(g))
	}
	return gravityNames[g]
}

// Row and Column give the position in the 3x3 alignment grid.
func (g Gravity) Row() int { return int(g) / 3 }

func (g Gravity) Column() int { return int(g) % 3 }

// ParseGravity accepts names like "top_start", "top-start" or "center_center".
func ParseGravity(s string) (Gravity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	if name == "center_center" {
		return Center, nil
	}
	for i, n := range gravityNames {
		if n == name {
			return Gravity(i), nil
		}
	}
	return TopStart, fmt.Errorf("prefs: unknown gravity %q", s)
}
