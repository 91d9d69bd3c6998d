package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Point is a position in foreground-layer logical coordinates.
type Point struct{ X, Y float32 }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// PointerID identifies one pointer device (mouse button, touch contact).
type PointerID int

// NoPointer is the pointer id of an idle gesture.
const NoPointer PointerID = -1

// RGB is an opaque 8-bit color.
type RGB struct{ R, G, B uint8 }

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Color implements the conversion to the standard color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromColor converts any color to an opaque RGB, discarding alpha.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#rrggbb" (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
