package scene

import (
	"fmt"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/grid"
	"cellgrid/pkg/layout"
)

// View binds a Grid to a group node. Content attached through the view is
// added under its node, so the node must sit at the grid's coordinate
// origin (position (0,0), scale 1).
//
// A View is itself grid content: attached to a cell of another grid it
// becomes a nested grid whose root follows that cell.
type View struct {
	*Node
	grid    *grid.Grid
	initial *layout.CellConfig
}

// NewView creates a view laid out from cfg. The tree is built by the first
// Rebuild, or when the view is attached to a host cell.
func NewView(name string, cfg *layout.CellConfig, opts ...grid.Option) *View {
	return &View{Node: NewGroup(name), grid: grid.New(opts...), initial: cfg}
}

// Grid returns the view's layout engine.
func (v *View) Grid() *grid.Grid { return v.grid }

// Configuration returns the config of the current tree, or the initial one
// before the first build.
func (v *View) Configuration() *layout.CellConfig {
	if cfg := v.grid.Configuration(); cfg != nil {
		return cfg
	}
	return v.initial
}

// Rebuild lays the view out again from cfg, or from its current config when
// cfg is nil.
func (v *View) Rebuild(cfg *layout.CellConfig) error {
	if cfg == nil {
		cfg = v.Configuration()
	}
	return v.grid.Rebuild(cfg)
}

// Resize drives the root bounds with a fixed w x h viewport and rebuilds.
func (v *View) Resize(w, h float64) error {
	v.grid.SetViewport(func() geom.Rect { return geom.XYWH(0, 0, w, h) })
	return v.Rebuild(nil)
}

// SetChild adds n under the view's node and attaches it to the named cell.
// On failure n is left where it was.
func (v *View) SetChild(name string, n grid.Content, override ...layout.ContentConfig) error {
	node, err := v.adopt(n)
	if err != nil {
		return err
	}
	prev := node.parent
	v.Node.Add(node)
	if err := v.grid.SetChild(name, n, override...); err != nil {
		if prev != nil {
			prev.Add(node)
		} else {
			v.Node.Remove(node)
		}
		return err
	}
	return nil
}

// DestroyChild detaches n from the grid and destroys it.
func (v *View) DestroyChild(n grid.Content, args ...any) error {
	return v.grid.DestroyChild(n, args...)
}

// adopt returns the node behind content: a *Node or a *View.
func (v *View) adopt(c grid.Content) (*Node, error) {
	switch n := c.(type) {
	case *Node:
		return n, nil
	case *View:
		if n == v {
			return nil, fmt.Errorf("view %q cannot host itself", v.Name)
		}
		return n.Node, nil
	}
	return nil, fmt.Errorf("view %q: unsupported content %T", v.Name, c)
}

// Cell looks up a cell of the current tree.
func (v *View) Cell(name string) (*layout.Cell, error) {
	return v.grid.CellByName(name)
}
