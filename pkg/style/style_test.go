package style

import (
	"testing"

	"cellgrid/pkg/layout"
)

func TestParseLength(t *testing.T) {
	tests := map[string]layout.Dim{
		"120px":  layout.Px(120),
		"0.5px":  layout.Px(0.5),
		"50%":    layout.Val(0.5),
		"100%":   layout.Val(1),
		"0.25":   layout.Val(0.25),
		" 300 ":  layout.Val(300),
		"-10":    layout.Val(-10),
		"1e2px":  layout.Px(100),
		"0":      layout.Val(0),
		"12.5 %": layout.Val(0.125),
	}
	for in, want := range tests {
		got, ok := ParseLength(in)
		if !ok || got != want {
			t.Errorf("ParseLength(%q): expected %+v, got %+v (ok=%v)", in, want, got, ok)
		}
	}
}

func TestParseLength_Invalid(t *testing.T) {
	for _, in := range []string{"", "px", "abc", "150%", "-5%", "10em"} {
		if _, ok := ParseLength(in); ok {
			t.Errorf("ParseLength(%q): expected failure", in)
		}
	}
}

func TestParseBox(t *testing.T) {
	a, b, c, d := layout.Px(1), layout.Px(2), layout.Px(3), layout.Px(4)
	tests := map[string]layout.Padding{
		"1px":             {Top: a, Right: a, Bottom: a, Left: a},
		"1px 2px":         {Top: a, Right: b, Bottom: a, Left: b},
		"1px 2px 3px":     {Top: a, Right: b, Bottom: c, Left: b},
		"1px 2px 3px 4px": {Top: a, Right: b, Bottom: c, Left: d},
	}
	for in, want := range tests {
		got, ok := ParseBox(in)
		if !ok || *got != want {
			t.Errorf("ParseBox(%q): expected %+v, got %+v", in, want, got)
		}
	}
	for _, in := range []string{"", "1 2 3 4 5", "1px wide"} {
		if _, ok := ParseBox(in); ok {
			t.Errorf("ParseBox(%q): expected failure", in)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]uint32{
		"red":       0xff0000,
		" Navy ":    0x000080,
		"#00ff00":   0x00ff00,
		"#0f0":      0x00ff00,
		"0xFFFFFF":  0xffffff,
		"16711680":  0xff0000,
		"#AbCdEf":   0xabcdef,
		"0x000001":  0x000001,
		"grey":      0x808080,
		"0":         0,
		"#ffffff  ": 0xffffff,
	}
	for in, want := range tests {
		got, ok := ParseColor(in)
		if !ok || got != want {
			t.Errorf("ParseColor(%q): expected %06x, got %06x (ok=%v)", in, want, got, ok)
		}
	}
	for _, in := range []string{"", "notacolor", "#12345", "#ggg", "0x1000000", "16777216", "-1"} {
		if _, ok := ParseColor(in); ok {
			t.Errorf("ParseColor(%q): expected failure", in)
		}
	}
}
