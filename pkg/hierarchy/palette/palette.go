// Package palette derives stable, visually dispersed colors from entity
// indices and formats them as terminal escape sequences.
//
// The default scheme, [Dispersed], walks the hue circle in golden-ratio
// steps at constant OkLCh lightness and chroma, so consecutive indices land
// roughly 137.5 degrees apart and stay distinguishable even for thousands of
// siblings. Any func(uint32) RGB can be used instead through [Palette].
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette maps an entity index to a color. Implementations must be pure:
// the same index always yields the same color.
type Palette func(index uint32) RGB

const (
	// goldenU32 is 2^32 divided by the golden ratio, rounded up.
	goldenU32 uint32 = 0x9E3779B9

	// Dispersed colors sit at a fixed perceptual lightness and chroma that
	// read well on both dark and light terminal backgrounds.
	lightness = 0.75
	chroma    = 0.12
)

// Hue returns the hue in degrees [0, 360) assigned to index.
func Hue(index uint32) float64 {
	return float64(index*goldenU32) * (360.0 / (1 << 32))
}

// Dispersed is the default [Palette].
func Dispersed(index uint32) RGB {
	h := Hue(index) * math.Pi / 180
	c := colorful.OkLab(lightness, chroma*math.Cos(h), chroma*math.Sin(h)).Clamped()
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// Start returns the escape sequence that switches the foreground to c.
func Start(c RGB) string {
	return fmt.Sprintf("%s%s;2;%d;%d;%dm", termenv.CSI, termenv.Foreground, c.R, c.G, c.B)
}

// Reset returns the escape sequence that restores default attributes.
func Reset() string {
	return termenv.CSI + termenv.ResetSeq + "m"
}
