// Package scene is a small retained-mode scene graph whose nodes satisfy the
// grid content contract. It is the reference host for the layout engine:
// sprites and groups are attached to cells, placed by the engine, then drawn
// with [Draw].
package scene

import (
	"image"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/images"
)

// Node is a transform with an optional drawable and children. Position and
// scale are local to the parent. Changes made with SetPosition and SetScale
// become visible to the world queries after CommitTransform.
type Node struct {
	Name string

	size   geom.Size   // native size of the drawable, zero for groups
	anchor geom.Vector // fraction of size at which the position sits
	image  image.Image

	parent   *Node
	children []*Node

	pos, pendingPos     geom.Point
	scale, pendingScale geom.Vector

	destroyed   bool
	destroyArgs []any
}

var one = geom.Vector{X: 1, Y: 1}

// NewGroup creates a node without a drawable. Its bounding box is the union
// of its children.
func NewGroup(name string) *Node {
	return &Node{Name: name, scale: one, pendingScale: one}
}

// NewSprite creates a node drawing a rectangle of the given native size. The
// anchor defaults to the top-left corner.
func NewSprite(name string, size geom.Size) *Node {
	n := NewGroup(name)
	n.size = size
	return n
}

// NewImage creates a sprite sized and drawn from img.
func NewImage(name string, img image.Image) *Node {
	n := NewSprite(name, images.SizeOf(img))
	n.image = img
	return n
}

// LoadImage creates an image sprite from uri.
func LoadImage(name string, l *images.Loader, uri string) (*Node, error) {
	img, err := l.Load(uri)
	if err != nil {
		return nil, err
	}
	return NewImage(name, img), nil
}

// SetAnchor moves the point of the drawable that sits at the node position.
// (0.5, 0.5) centers the drawable on it.
func (n *Node) SetAnchor(x, y float64) *Node {
	n.anchor = geom.Vector{X: x, Y: y}
	return n
}

// Image returns the drawable's image, nil for plain sprites and groups.
func (n *Node) Image() image.Image { return n.image }

// Add appends child, detaching it from its previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child. It reports whether child was a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Position returns the committed local position.
func (n *Node) Position() geom.Point { return n.pos }

// Scale returns the committed local scale.
func (n *Node) Scale() geom.Vector { return n.scale }

func (n *Node) SetPosition(x, y float64) { n.pendingPos = geom.Point{X: x, Y: y} }
func (n *Node) SetScale(x, y float64)    { n.pendingScale = geom.Vector{X: x, Y: y} }

// CommitTransform applies the pending position and scale.
func (n *Node) CommitTransform() {
	n.pos, n.scale = n.pendingPos, n.pendingScale
}

// WorldScale is the product of the committed scales from the root down to n.
func (n *Node) WorldScale() geom.Vector {
	s := n.scale
	for p := n.parent; p != nil; p = p.parent {
		s = geom.Vector{X: s.X * p.scale.X, Y: s.Y * p.scale.Y}
	}
	return s
}

// WorldPosition is the node position in root space.
func (n *Node) WorldPosition() geom.Point {
	if n.parent == nil {
		return n.pos
	}
	origin, s := n.parent.WorldPosition(), n.parent.WorldScale()
	return geom.Point{X: origin.X + n.pos.X*s.X, Y: origin.Y + n.pos.Y*s.Y}
}

// drawRect is the drawable's rectangle in root space, empty for groups.
func (n *Node) drawRect() geom.Rect {
	if n.size.Empty() {
		return geom.Rect{}
	}
	wp, ws := n.WorldPosition(), n.WorldScale()
	return geom.Rect{
		X:      wp.X - n.anchor.X*n.size.Width*ws.X,
		Y:      wp.Y - n.anchor.Y*n.size.Height*ws.Y,
		Width:  n.size.Width * ws.X,
		Height: n.size.Height * ws.Y,
	}
}

// WorldBounds is the root-space bounding box of n and its descendants. A
// node with nothing to draw has an empty box at its world position.
func (n *Node) WorldBounds() geom.Rect {
	box := n.drawRect()
	for _, c := range n.children {
		box = box.Union(c.WorldBounds())
	}
	if box.Empty() {
		wp := n.WorldPosition()
		return geom.Rect{X: wp.X, Y: wp.Y}
	}
	return box
}

// IntrinsicSize is the size of WorldBounds.
func (n *Node) IntrinsicSize() geom.Size { return n.WorldBounds().Size() }

// BoundsOrigin is the top-left corner of WorldBounds.
func (n *Node) BoundsOrigin() geom.Point { return n.WorldBounds().Origin() }

// Destroy detaches n from its parent and marks it and its descendants
// destroyed. args are kept for inspection.
func (n *Node) Destroy(args ...any) {
	if n.parent != nil {
		n.parent.Remove(n)
	}
	n.destroyArgs = args
	n.markDestroyed()
}

func (n *Node) markDestroyed() {
	n.destroyed = true
	for _, c := range n.children {
		c.markDestroyed()
	}
}

// Destroyed reports whether Destroy was called on n or an ancestor.
func (n *Node) Destroyed() bool { return n.destroyed }

// DestroyArgs returns the arguments of the Destroy call.
func (n *Node) DestroyArgs() []any { return n.destroyArgs }

// Walk visits n and its descendants in drawing order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
