package state

import "math"

// PickContrast returns the grid color that stays visible against bg:
// black, white, or a gray mirrored around the luma of bg.
func PickContrast(bg RGB) RGB {
	y := roundHalfUp(0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B))
	oy := 255 - y
	d := oy - y
	switch {
	case d < y:
		return Black
	case d < oy:
		return White
	}
	g := uint8(oy)
	return RGB{g, g, g}
}

// PackGridColor turns a contrast color into the color the grid is drawn
// with. With legacyGreenShift the green channel is packed at bit 9, which
// bleeds into red and drops the low green bit.
func PackGridColor(c RGB, legacyGreenShift bool) RGB {
	if !legacyGreenShift {
		return c
	}
	v := uint32(c.R)<<16 | uint32(c.G)<<9 | uint32(c.B)
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
