package layout

import (
	"fmt"
	"strings"

	"cellgrid/pkg/geom"
)

// PathSeparator separates cell names in a lookup path.
const PathSeparator = "/"

// Cell is one rectangular region of a built tree.
type Cell struct {
	Name    string
	Bounds  geom.Rect
	Area    geom.Rect // Bounds minus Padding
	Padding geom.Edges
	Scale   ScaleMode
	Align   AlignMode
	Offset  geom.Vector

	// Debug points at the nearest explicit style in the config chain, or is
	// nil when there is none or it was disabled.
	Debug          *Debug
	DebugInherited bool

	Parent   *Cell
	Children []*Cell
	Contents []*Entry

	// Config is the declaration this cell was built from.
	Config *CellConfig
}

// Entry is one content item attached to a cell.
type Entry struct {
	Content   any
	Override  ContentConfig
	Merged    ContentConfig
	Placement Placement
}

// Placement is the geometry computed for an entry on its last reconciliation.
type Placement struct {
	Target   geom.Rect // area fit and align worked against
	Scale    geom.Vector
	Position geom.Point
	Rect     geom.Rect // scaled content box at its aligned position
}

// Defaults returns the cell's placement rules as a ContentConfig, the base an
// attachment override is merged over.
func (c *Cell) Defaults() ContentConfig {
	offset := c.Offset
	return ContentConfig{
		Scale:  c.Scale,
		Align:  c.Align,
		Offset: &offset,
		Debug:  c.Debug,
	}
}

// Path returns the slash-separated names from the root to c.
func (c *Cell) Path() string {
	if c.Parent == nil {
		return c.Name
	}
	return c.Parent.Path() + PathSeparator + c.Name
}

// Child returns the direct child called name.
func (c *Cell) Child(name string) *Cell {
	for _, child := range c.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Find looks name up in the subtree rooted at c, c included. A bare name is
// searched breadth-first and must match exactly one cell. A path ("ui/ui_1")
// walks direct children from c; its first segment may name c itself.
func (c *Cell) Find(name string) (*Cell, error) {
	if strings.Contains(name, PathSeparator) {
		return c.findPath(name)
	}

	var found *Cell
	matches := 0
	queue := []*Cell{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Name == name {
			if found == nil {
				found = cur
			}
			matches++
		}
		queue = append(queue, cur.Children...)
	}

	switch matches {
	case 0:
		return nil, &CellNotFoundError{Name: name}
	case 1:
		return found, nil
	}
	return nil, fmt.Errorf("%w: %q matches %d cells", ErrAmbiguousName, name, matches)
}

func (c *Cell) findPath(path string) (*Cell, error) {
	parts := strings.Split(strings.Trim(path, PathSeparator), PathSeparator)
	cur := c
	if parts[0] == c.Name {
		parts = parts[1:]
	}
	for _, part := range parts {
		next := cur.Child(part)
		if next == nil {
			return nil, &CellNotFoundError{Name: path}
		}
		cur = next
	}
	return cur, nil
}

// Walk visits c and its descendants in pre-order. Returning false from fn
// skips the visited cell's children.
func (c *Cell) Walk(fn func(*Cell) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// Cells returns c and all descendants in pre-order.
func (c *Cell) Cells() []*Cell {
	var out []*Cell
	c.Walk(func(cell *Cell) bool {
		out = append(out, cell)
		return true
	})
	return out
}

// FindContent returns the cell holding content and the index of its entry.
func (c *Cell) FindContent(content any) (*Cell, int) {
	var (
		holder *Cell
		index  = -1
	)
	c.Walk(func(cell *Cell) bool {
		if holder != nil {
			return false
		}
		for i, e := range cell.Contents {
			if e.Content == content {
				holder, index = cell, i
				return false
			}
		}
		return true
	})
	return holder, index
}

// RemoveContent detaches content from whichever cell holds it and returns
// the removed entry, or nil when it was not attached.
func (c *Cell) RemoveContent(content any) *Entry {
	holder, i := c.FindContent(content)
	if holder == nil {
		return nil
	}
	e := holder.Contents[i]
	holder.Contents = append(holder.Contents[:i:i], holder.Contents[i+1:]...)
	return e
}
