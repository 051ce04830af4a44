package layout

import (
	"errors"
	"testing"

	"cellgrid/pkg/geom"
)

func nestedTree(t *testing.T) *Cell {
	t.Helper()
	cfg := &CellConfig{
		Name:   "root",
		Bounds: viewport(100, 100),
		Cells: []*CellConfig{
			{Name: "left", Bounds: Bounds{Width: Val(0.5)}, Cells: []*CellConfig{{Name: "icon"}, {Name: "label"}}},
			{Name: "right", Cells: []*CellConfig{{Name: "icon"}}},
		},
	}
	root, err := BuildTree(cfg, geom.Rect{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestCell_FindByName(t *testing.T) {
	root := nestedTree(t)
	label, err := root.Find("label")
	if err != nil {
		t.Fatal(err)
	}
	if label.Path() != "root/left/label" {
		t.Errorf("expected path root/left/label, got %s", label.Path())
	}
	if self, err := root.Find("root"); err != nil || self != root {
		t.Errorf("expected root to find itself, got %v %v", self, err)
	}
}

func TestCell_FindMissing(t *testing.T) {
	root := nestedTree(t)
	_, err := root.Find("nope")
	if !errors.Is(err, ErrCellNotFound) {
		t.Fatalf("expected ErrCellNotFound, got %v", err)
	}
	var nf *CellNotFoundError
	if !errors.As(err, &nf) || nf.Name != "nope" {
		t.Errorf("expected the error to carry the name, got %v", err)
	}
}

func TestCell_FindAmbiguous(t *testing.T) {
	root := nestedTree(t)
	if _, err := root.Find("icon"); !errors.Is(err, ErrAmbiguousName) {
		t.Fatalf("expected ErrAmbiguousName, got %v", err)
	}
	icon, err := root.Find("right/icon")
	if err != nil {
		t.Fatal(err)
	}
	if icon.Parent.Name != "right" {
		t.Errorf("expected right/icon, got %s", icon.Path())
	}
	if _, err := root.Find("root/left/icon"); err != nil {
		t.Errorf("expected a rooted path to resolve, got %v", err)
	}
	if _, err := root.Find("left/missing"); !errors.Is(err, ErrCellNotFound) {
		t.Errorf("expected ErrCellNotFound for a bad path, got %v", err)
	}
}

func TestCell_CellsPreOrder(t *testing.T) {
	root := nestedTree(t)
	var names []string
	for _, c := range root.Cells() {
		names = append(names, c.Name)
	}
	want := []string{"root", "left", "icon", "label", "right", "icon"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestCell_ContentBookkeeping(t *testing.T) {
	root := nestedTree(t)
	label, _ := root.Find("label")
	a, b := new(int), new(int)
	label.Contents = append(label.Contents, &Entry{Content: a}, &Entry{Content: b})

	holder, i := root.FindContent(b)
	if holder != label || i != 1 {
		t.Fatalf("expected label[1], got %v[%d]", holder, i)
	}
	if e := root.RemoveContent(a); e == nil || e.Content != a {
		t.Fatalf("expected to remove a, got %+v", e)
	}
	if len(label.Contents) != 1 || label.Contents[0].Content != b {
		t.Errorf("expected only b to remain, got %+v", label.Contents)
	}
	if e := root.RemoveContent(a); e != nil {
		t.Errorf("removing twice must be a no-op, got %+v", e)
	}
}

func TestContentConfig_Merge(t *testing.T) {
	off := &geom.Vector{X: 5}
	base := ContentConfig{Scale: ScaleShowAll, Align: AlignCenter, Offset: off}
	got := ContentConfig{Align: AlignLeftTop}.Merge(base)
	if got.Scale != ScaleShowAll || got.Align != AlignLeftTop || got.Offset != off {
		t.Errorf("unexpected merge %+v", got)
	}
}
