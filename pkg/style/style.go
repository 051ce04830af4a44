// Package style parses the string forms configuration files use for lengths,
// padding shorthands and colors.
package style

import (
	"strconv"
	"strings"

	"cellgrid/pkg/layout"
)

// ParseLength parses a length value. "120px" is always units, "50%" is a
// fraction of the reference extent, and a bare number follows the fraction
// rule (values in [0,1] are fractions, others units).
func ParseLength(val string) (layout.Dim, bool) {
	val = strings.TrimSpace(val)
	switch {
	case strings.HasSuffix(val, "px"):
		num, ok := parseFloat(strings.TrimSuffix(val, "px"))
		if !ok {
			return layout.Dim{}, false
		}
		return layout.Px(num), true
	case strings.HasSuffix(val, "%"):
		num, ok := parseFloat(strings.TrimSuffix(val, "%"))
		if !ok || num < 0 || num > 100 {
			return layout.Dim{}, false
		}
		return layout.Val(num / 100), true
	}
	num, ok := parseFloat(val)
	if !ok {
		return layout.Dim{}, false
	}
	return layout.Val(num), true
}

func parseFloat(s string) (float64, bool) {
	num, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ParseBox expands a padding shorthand: "10px" (all), "10px 20px" (vertical
// horizontal), "10px 20px 30px" (top h bottom) or "10px 20px 30px 40px".
func ParseBox(value string) (*layout.Padding, bool) {
	parts := strings.Fields(value)
	dims := make([]layout.Dim, len(parts))
	for i, part := range parts {
		d, ok := ParseLength(part)
		if !ok {
			return nil, false
		}
		dims[i] = d
	}
	return BoxOf(dims)
}

// BoxOf applies the shorthand rules to already parsed values.
func BoxOf(dims []layout.Dim) (*layout.Padding, bool) {
	switch len(dims) {
	case 1:
		return &layout.Padding{Top: dims[0], Right: dims[0], Bottom: dims[0], Left: dims[0]}, true
	case 2:
		// Vertical, horizontal
		return &layout.Padding{Top: dims[0], Right: dims[1], Bottom: dims[0], Left: dims[1]}, true
	case 3:
		// Top, horizontal, bottom
		return &layout.Padding{Top: dims[0], Right: dims[1], Bottom: dims[2], Left: dims[1]}, true
	case 4:
		return &layout.Padding{Top: dims[0], Right: dims[1], Bottom: dims[2], Left: dims[3]}, true
	}
	return nil, false
}

var namedColors = map[string]uint32{
	"red":     0xff0000,
	"green":   0x008000,
	"blue":    0x0000ff,
	"yellow":  0xffff00,
	"cyan":    0x00ffff,
	"magenta": 0xff00ff,
	"white":   0xffffff,
	"black":   0x000000,
	"gray":    0x808080,
	"grey":    0x808080,
	"orange":  0xffa500,
	"purple":  0x800080,
	"pink":    0xffc0cb,
	"brown":   0xa52a2a,
	"lime":    0x00ff00,
	"navy":    0x000080,
	"teal":    0x008080,
	"silver":  0xc0c0c0,
}

// ParseColor parses a color name, "#rgb", "#rrggbb", "0xrrggbb" or a decimal
// integer into a 0xRRGGBB value.
func ParseColor(colorStr string) (uint32, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if c, ok := namedColors[colorStr]; ok {
		return c, true
	}

	var hex string
	switch {
	case strings.HasPrefix(colorStr, "#"):
		hex = colorStr[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return 0, false
		}
	case strings.HasPrefix(colorStr, "0x"):
		hex = colorStr[2:]
	default:
		n, err := strconv.ParseUint(colorStr, 10, 32)
		if err != nil || n > 0xffffff {
			return 0, false
		}
		return uint32(n), true
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || n > 0xffffff {
		return 0, false
	}
	return uint32(n), true
}
