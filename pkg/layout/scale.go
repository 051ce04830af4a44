package layout

import (
	"fmt"
	"math"
	"strings"

	"cellgrid/pkg/geom"
)

// ScaleMode is a policy for deriving a content's scale factor from its target area.
type ScaleMode uint8

const (
	ScaleUnset   ScaleMode = iota // inherit; cells resolve it to ScaleShowAll
	ScaleNone                     // native size, may overflow or underflow
	ScaleShowAll                  // uniform, fits entirely inside the target
	ScaleFill                     // per-axis, covers the target exactly
	ScaleCover                    // uniform, covers the target, may overflow one axis
)

var scaleNames = map[ScaleMode]string{
	ScaleUnset:   "unset",
	ScaleNone:    "none",
	ScaleShowAll: "showAll",
	ScaleFill:    "fill",
	ScaleCover:   "cover",
}

func (m ScaleMode) String() string {
	if s, ok := scaleNames[m]; ok {
		return s
	}
	return fmt.Sprintf("ScaleMode(%d)", m)
}

// ParseScaleMode accepts the mode names case-insensitively, ignoring '_' and
// '-', plus the aliases "contain" and "stretch".
func ParseScaleMode(s string) (ScaleMode, error) {
	switch normalizeName(s) {
	case "", "unset", "inherit":
		return ScaleUnset, nil
	case "none":
		return ScaleNone, nil
	case "showall", "contain", "fit":
		return ScaleShowAll, nil
	case "fill", "stretch":
		return ScaleFill, nil
	case "cover", "envelop":
		return ScaleCover, nil
	}
	return ScaleUnset, fmt.Errorf("%w: unknown scale mode %q", ErrInvalidConfig, s)
}

// Fit computes the scale that maps content onto target under mode.
//
// A non-positive or NaN content dimension cannot be divided by. That axis gets
// scale 1 in every mode, the other keeps its own ratio, and Fit returns an
// ErrInvalidScaleInput warning along with the usable vector. ScaleUnset
// behaves as ScaleShowAll.
func Fit(content geom.Size, target geom.Rect, mode ScaleMode) (geom.Vector, error) {
	if mode == ScaleNone {
		return geom.Vector{X: 1, Y: 1}, nil
	}

	rx, okX := axisRatio(target.Width, content.Width)
	ry, okY := axisRatio(target.Height, content.Height)

	var warn error
	if !okX || !okY {
		warn = &Warning{
			Kind:   ErrInvalidScaleInput,
			Detail: fmt.Sprintf("content size %v", content),
		}
	}

	switch {
	case !okX && !okY:
		return geom.Vector{X: 1, Y: 1}, warn
	case !okX:
		return geom.Vector{X: 1, Y: ry}, warn
	case !okY:
		return geom.Vector{X: rx, Y: 1}, warn
	}

	switch mode {
	case ScaleFill:
		return geom.Vector{X: rx, Y: ry}, nil
	case ScaleCover:
		s := math.Max(rx, ry)
		return geom.Vector{X: s, Y: s}, nil
	default:
		s := math.Min(rx, ry)
		return geom.Vector{X: s, Y: s}, nil
	}
}

func axisRatio(target, content float64) (float64, bool) {
	if content <= 0 || math.IsNaN(content) || math.IsInf(content, 0) {
		return 1, false
	}
	return target / content, true
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
