package core

import "fmt"

// Color is the foreground colour of a screen cell.
// Values below colorRGBFlag are ANSI palette entries; RGB colours carry the flag bit
// on top of a packed 0xRRGGBB value.
type Color uint32

const colorRGBFlag Color = 1 << 24

// Palette colours used by HUD and menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB builds a truecolor value from a packed 0xRRGGBB integer.
func RGB(packed uint32) Color {
	return Color(packed&0xFFFFFF) | colorRGBFlag
}

// IsRGB reports whether the colour is a truecolor value.
func (c Color) IsRGB() bool {
	return c&colorRGBFlag != 0
}

// Packed returns the 0xRRGGBB value of a truecolor colour.
func (c Color) Packed() uint32 {
	return uint32(c &^ colorRGBFlag)
}

// Hex returns the colour as "#rrggbb". Palette colours return "".
func (c Color) Hex() string {
	if !c.IsRGB() {
		return ""
	}
	return fmt.Sprintf("#%06x", c.Packed())
}

// Shade scales an RGB colour's channels by factor (0..1). Palette colours are returned as-is.
func (c Color) Shade(factor float64) Color {
	if !c.IsRGB() {
		return c
	}
	factor = ClampF(factor, 0, 1)
	p := c.Packed()
	r := uint32(float64((p>>16)&0xFF) * factor)
	g := uint32(float64((p>>8)&0xFF) * factor)
	b := uint32(float64(p&0xFF) * factor)
	return RGB(r<<16 | g<<8 | b)
}
