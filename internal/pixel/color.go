package pixel

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Black is what every malformed color decodes to.
var Black = color.NRGBA{A: 255}

// ParseHex decodes "#RGB", "#RRGGBB" (leading '#' optional) into an opaque
// color. Shorthand digits are duplicated. Anything else yields black and
// ok=false; callers that only paint can ignore ok.
func ParseHex(hex string) (color.NRGBA, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Black, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black, false
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, true
}

// ToRGBA converts a hex color plus opacity into a compositable sample.
func ToRGBA(hex string, alpha float64) color.NRGBA {
	c, _ := ParseHex(hex)
	c.A = alphaByte(alpha)
	return c
}

// NormalizeHex returns the canonical "#RRGGBB" spelling of hex.
func NormalizeHex(hex string) string {
	c, _ := ParseHex(hex)
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ClampAlpha pins alpha into [0, 1].
func ClampAlpha(alpha float64) float64 {
	if alpha < 0 || math.IsNaN(alpha) {
		return 0
	}
	if alpha > 1 {
		return 1
	}
	return alpha
}

func alphaByte(alpha float64) uint8 {
	return uint8(ClampAlpha(alpha)*255 + 0.5)
}
