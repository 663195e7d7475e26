// Package heuristic maps pixels to the single ordering scalar used for
// both range filtering and sort comparison. The set of heuristics is
// closed and known at compile time; all arithmetic is integer math on
// 8-bit channel values, widened only where an intermediate would
// otherwise overflow. Alpha is never read.
package heuristic

import (
	"fmt"
	"image/color"
	"strings"
)

// Heuristic identifies one of the named per-pixel scalar functions.
type Heuristic uint8

const (
	// Luma is the default: (2R + G + 4B) >> 3, a cheap BT.601-ish weighting.
	Luma Heuristic = iota
	// Brightness is an exact-sum variant of the channel average.
	Brightness
	// Max is the largest of R, G, B.
	Max
	// Min is the smallest of R, G, B.
	Min
	// Chroma is Max - Min.
	Chroma
	// Hue is a coarse 0-255 hue angle, 0 for achromatic pixels.
	Hue
	// Saturation is Chroma / Max with truncating division, 0 when Max is 0.
	Saturation
	// Value is an alias for Max, kept for HSV familiarity.
	Value
	// Red, Green and Blue are the raw channel values.
	Red
	Green
	Blue
)

var names = []string{
	Luma:       "luma",
	Brightness: "brightness",
	Max:        "max",
	Min:        "min",
	Chroma:     "chroma",
	Hue:        "hue",
	Saturation: "saturation",
	Value:      "value",
	Red:        "red",
	Green:      "green",
	Blue:       "blue",
}

// Names returns the recognized variant names in declaration order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Parse resolves a variant name, case-insensitively.
func Parse(name string) (Heuristic, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == lower {
			return Heuristic(i), nil
		}
	}
	return 0, fmt.Errorf("unknown heuristic %q (valid: %s)", name, strings.Join(names, ", "))
}

func (h Heuristic) String() string {
	if int(h) < len(names) {
		return names[h]
	}
	return fmt.Sprintf("heuristic(%d)", uint8(h))
}

// Value computes the scalar for one pixel.
func (h Heuristic) Value(px color.NRGBA) uint8 {
	switch h {
	case Red:
		return px.R
	case Green:
		return px.G
	case Blue:
		return px.B
	case Max, Value:
		return maxChannel(px)
	case Min:
		return minChannel(px)
	case Chroma:
		return maxChannel(px) - minChannel(px)
	case Hue:
		return hue(px)
	case Saturation:
		m := maxChannel(px)
		if m == 0 {
			return 0
		}
		return (m - minChannel(px)) / m
	case Brightness:
		// Exact floor((R+G+B)/3) without widening: per-channel division
		// plus the pooled remainders.
		return px.R/3 + px.G/3 + px.B/3 + (px.R%3+px.G%3+px.B%3)/3
	default: // Luma
		return uint8((uint16(px.R)*2 + uint16(px.G) + uint16(px.B)*4) >> 3)
	}
}

func maxChannel(px color.NRGBA) uint8 {
	m := px.R
	if px.G > m {
		m = px.G
	}
	if px.B > m {
		m = px.B
	}
	return m
}

func minChannel(px color.NRGBA) uint8 {
	m := px.R
	if px.G < m {
		m = px.G
	}
	if px.B < m {
		m = px.B
	}
	return m
}

// hue maps a pixel onto a 0-255 circle: red-dominant pixels land near 0,
// green-dominant near 85, blue-dominant near 171. Achromatic pixels are 0.
// The dominant channel is the last maximal one in R, G, B order, and the
// diff/chroma quotient truncates before scaling, so the result is coarse
// on purpose.
func hue(px color.NRGBA) uint8 {
	maxc := maxChannel(px)
	c := int(maxc) - int(minChannel(px))
	if c == 0 {
		return 0
	}
	switch maxc {
	case px.B:
		return uint8(abs(int(px.R)-int(px.G))/c*43) + 171
	case px.G:
		return uint8(abs(int(px.B)-int(px.R))/c*43) + 85
	default:
		return uint8(abs(int(px.G)-int(px.B)) / c * 43)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
