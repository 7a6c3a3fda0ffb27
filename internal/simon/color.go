package simon

import (
	"fmt"
	"strings"
)

// Color identifies one of the four pads on the board.
type Color uint8

const (
	Blue Color = iota
	Green
	Yellow
	Red
)

// AllColors lists every pad in board order.
var AllColors = [...]Color{Blue, Green, Yellow, Red}

// easyColors is the palette used on Easy; Yellow never appears.
var easyColors = [...]Color{Blue, Green, Red}

func (c Color) String() string {
	switch c {
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	case Red:
		return "Red"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ColorSet is a small set of colors stored as a bitmask. It is used both for
// a sequence step (one or two pads pressed together) and for the pads already
// pressed within the current step.
type ColorSet uint8

// SetOf builds a ColorSet from the given colors.
func SetOf(colors ...Color) ColorSet {
	var s ColorSet
	for _, c := range colors {
		s = s.With(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s ColorSet) Has(c Color) bool { return s&(1<<c) != 0 }

// With returns a copy of the set with c added.
func (s ColorSet) With(c Color) ColorSet { return s | 1<<c }

// Len returns the number of colors in the set.
func (s ColorSet) Len() int {
	n := 0
	for _, c := range AllColors {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Colors returns the members in board order.
func (s ColorSet) Colors() []Color {
	out := make([]Color, 0, 2)
	for _, c := range AllColors {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s ColorSet) String() string {
	names := make([]string, 0, 2)
	for _, c := range s.Colors() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
