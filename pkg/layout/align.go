package layout

import (
	"fmt"

	"cellgrid/pkg/geom"
)

// AlignMode is one of nine anchor points over {Left, Center, Right} x
// {Top, Center, Bottom}.
type AlignMode uint8

const (
	AlignUnset AlignMode = iota // inherit; cells resolve it to AlignCenter
	AlignLeftTop
	AlignCenterTop
	AlignRightTop
	AlignLeftCenter
	AlignCenter
	AlignRightCenter
	AlignLeftBottom
	AlignCenterBottom
	AlignRightBottom
)

var alignNames = map[AlignMode]string{
	AlignUnset:        "unset",
	AlignLeftTop:      "leftTop",
	AlignCenterTop:    "centerTop",
	AlignRightTop:     "rightTop",
	AlignLeftCenter:   "leftCenter",
	AlignCenter:       "center",
	AlignRightCenter:  "rightCenter",
	AlignLeftBottom:   "leftBottom",
	AlignCenterBottom: "centerBottom",
	AlignRightBottom:  "rightBottom",
}

func (m AlignMode) String() string {
	if s, ok := alignNames[m]; ok {
		return s
	}
	return fmt.Sprintf("AlignMode(%d)", m)
}

// ParseAlignMode accepts the mode names case-insensitively, ignoring '_' and
// '-'. "middle" is accepted for the vertical center and the vertical word
// may come first ("topLeft").
func ParseAlignMode(s string) (AlignMode, error) {
	n := normalizeName(s)
	switch n {
	case "", "unset", "inherit":
		return AlignUnset, nil
	case "center", "middle", "centercenter", "centermiddle", "middlecenter":
		return AlignCenter, nil
	}
	for mode := range alignNames {
		if mode == AlignUnset {
			continue
		}
		h, v := mode.factors()
		for _, hw := range horizontalWords(h) {
			for _, vw := range verticalWords(v) {
				if n == hw+vw || n == vw+hw {
					return mode, nil
				}
			}
		}
	}
	return AlignUnset, fmt.Errorf("%w: unknown align mode %q", ErrInvalidConfig, s)
}

// Align returns the position at which content, already scaled, must be placed
// so that its anchor point coincides with the same anchor point of target.
// AlignUnset behaves as AlignCenter.
func Align(content geom.Size, target geom.Rect, mode AlignMode) geom.Vector {
	h, v := mode.factors()
	return geom.Vector{
		X: target.X + (target.Width-content.Width)*h,
		Y: target.Y + (target.Height-content.Height)*v,
	}
}

// factors returns the horizontal and vertical anchor fractions.
func (m AlignMode) factors() (h, v float64) {
	switch m {
	case AlignLeftTop:
		return 0, 0
	case AlignCenterTop:
		return 0.5, 0
	case AlignRightTop:
		return 1, 0
	case AlignLeftCenter:
		return 0, 0.5
	case AlignRightCenter:
		return 1, 0.5
	case AlignLeftBottom:
		return 0, 1
	case AlignCenterBottom:
		return 0.5, 1
	case AlignRightBottom:
		return 1, 1
	default:
		return 0.5, 0.5
	}
}

func horizontalWords(h float64) []string {
	switch h {
	case 0:
		return []string{"left"}
	case 1:
		return []string{"right"}
	}
	return []string{"center"}
}

func verticalWords(v float64) []string {
	switch v {
	case 0:
		return []string{"top"}
	case 1:
		return []string{"bottom"}
	}
	return []string{"center", "middle"}
}
