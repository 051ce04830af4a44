package scene

import "cellgrid/pkg/render"

// Draw paints every drawable under root in tree order. Image sprites are
// stretched over their world rectangle; plain sprites draw the renderer's
// placeholder.
func Draw(r *render.Renderer, root *Node) {
	root.Walk(func(n *Node) bool {
		if rect := n.drawRect(); !rect.Empty() {
			r.DrawImage(n.image, rect)
		}
		return true
	})
}
