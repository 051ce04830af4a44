package layout

import (
	"errors"
	"math"
	"testing"

	"cellgrid/pkg/geom"
)

const tol = 1e-9

func TestFit_None(t *testing.T) {
	s, err := Fit(geom.Size{Width: 10, Height: 20}, geom.XYWH(0, 0, 500, 500), ScaleNone)
	if err != nil {
		t.Fatalf("unexpected warning: %v", err)
	}
	if s != (geom.Vector{X: 1, Y: 1}) {
		t.Errorf("expected (1,1), got %+v", s)
	}
}

func TestFit_ShowAllScenario(t *testing.T) {
	// 100x50 into 200x200: width ratio 2, height ratio 4, min wins.
	s, err := Fit(geom.Size{Width: 100, Height: 50}, geom.XYWH(0, 0, 200, 200), ScaleShowAll)
	if err != nil {
		t.Fatalf("unexpected warning: %v", err)
	}
	if s.X != 2 || s.Y != 2 {
		t.Errorf("expected (2,2), got %+v", s)
	}
}

func TestFit_ShowAllFitsInsideTarget(t *testing.T) {
	contents := []geom.Size{{Width: 100, Height: 50}, {Width: 3, Height: 700}, {Width: 640, Height: 480}, {Width: 1, Height: 1}}
	targets := []geom.Rect{geom.XYWH(0, 0, 200, 200), geom.XYWH(5, 5, 33, 1000), geom.XYWH(0, 0, 1920, 1080)}
	for _, c := range contents {
		for _, target := range targets {
			s, err := Fit(c, target, ScaleShowAll)
			if err != nil {
				t.Fatalf("unexpected warning: %v", err)
			}
			scaled := c.Scale(s)
			if scaled.Width > target.Width+tol || scaled.Height > target.Height+tol {
				t.Errorf("%v in %v: scaled %v overflows", c, target, scaled)
			}
			if math.Abs(scaled.Width-target.Width) > tol && math.Abs(scaled.Height-target.Height) > tol {
				t.Errorf("%v in %v: scaled %v touches neither axis", c, target, scaled)
			}
			if math.Abs(scaled.Width/scaled.Height-c.Width/c.Height) > 1e-6 {
				t.Errorf("%v in %v: aspect ratio changed to %v", c, target, scaled)
			}
		}
	}
}

func TestFit_FillMatchesTarget(t *testing.T) {
	c := geom.Size{Width: 37, Height: 91}
	target := geom.XYWH(10, 10, 320, 240)
	s, err := Fit(c, target, ScaleFill)
	if err != nil {
		t.Fatalf("unexpected warning: %v", err)
	}
	scaled := c.Scale(s)
	if math.Abs(scaled.Width-320) > tol || math.Abs(scaled.Height-240) > tol {
		t.Errorf("expected 320x240, got %v", scaled)
	}
}

func TestFit_Cover(t *testing.T) {
	s, _ := Fit(geom.Size{Width: 100, Height: 50}, geom.XYWH(0, 0, 200, 200), ScaleCover)
	if s.X != 4 || s.Y != 4 {
		t.Errorf("expected (4,4), got %+v", s)
	}
}

func TestFit_UnsetActsAsShowAll(t *testing.T) {
	a, _ := Fit(geom.Size{Width: 100, Height: 50}, geom.XYWH(0, 0, 200, 200), ScaleUnset)
	b, _ := Fit(geom.Size{Width: 100, Height: 50}, geom.XYWH(0, 0, 200, 200), ScaleShowAll)
	if a != b {
		t.Errorf("expected %+v, got %+v", b, a)
	}
}

func TestFit_ZeroDimensionWarns(t *testing.T) {
	tests := map[string]struct {
		content geom.Size
		mode    ScaleMode
		want    geom.Vector
	}{
		"zero width fill":      {geom.Size{Width: 0, Height: 50}, ScaleFill, geom.Vector{X: 1, Y: 4}},
		"zero width show all":  {geom.Size{Width: 0, Height: 50}, ScaleShowAll, geom.Vector{X: 1, Y: 4}},
		"zero width cover":     {geom.Size{Width: 0, Height: 50}, ScaleCover, geom.Vector{X: 1, Y: 4}},
		"zero height show all": {geom.Size{Width: 100, Height: 0}, ScaleShowAll, geom.Vector{X: 2, Y: 1}},
		"zero height fill":     {geom.Size{Width: 100, Height: 0}, ScaleFill, geom.Vector{X: 2, Y: 1}},
		"both zero":            {geom.Size{}, ScaleCover, geom.Vector{X: 1, Y: 1}},
		"nan width":            {geom.Size{Width: math.NaN(), Height: 50}, ScaleFill, geom.Vector{X: 1, Y: 4}},
	}
	for name, tc := range tests {
		s, err := Fit(tc.content, geom.XYWH(0, 0, 200, 200), tc.mode)
		if !errors.Is(err, ErrInvalidScaleInput) {
			t.Errorf("%s: expected ErrInvalidScaleInput, got %v", name, err)
		}
		if s != tc.want {
			t.Errorf("%s: expected %+v, got %+v", name, tc.want, s)
		}
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) || math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			t.Errorf("%s: non-finite scale %+v", name, s)
		}
	}
}

func TestParseScaleMode(t *testing.T) {
	tests := map[string]ScaleMode{
		"none":     ScaleNone,
		"showAll":  ScaleShowAll,
		"SHOW_ALL": ScaleShowAll,
		"contain":  ScaleShowAll,
		"stretch":  ScaleFill,
		"cover":    ScaleCover,
		"":         ScaleUnset,
	}
	for in, want := range tests {
		got, err := ParseScaleMode(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseScaleMode("zoom"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
