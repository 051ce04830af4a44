package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"

	"cellgrid/pkg/debug"
	"cellgrid/pkg/geom"
)

// Renderer draws debug overlays and scene images onto a canvas.
type Renderer struct {
	context *gg.Context
	labels  bool
}

// NewRenderer returns a renderer with a transparent width x height canvas.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// SetLabels toggles drawing each cell's name in the top-left corner of its
// bounds.
func (r *Renderer) SetLabels(on bool) {
	r.labels = on
}

// Clear fills the canvas with a 0xRRGGBB color.
func (r *Renderer) Clear(color uint32) {
	r.context.SetRGB(channels(color))
	r.context.Clear()
}

// Render draws overlay shapes in order, so later shapes end up on top.
func (r *Renderer) Render(shapes []debug.Shape) {
	for _, s := range shapes {
		r.drawShape(s)
	}
}

func (r *Renderer) drawShape(s debug.Shape) {
	if s.Rect.Empty() {
		return
	}
	red, green, blue := s.RGB()

	if s.Fill {
		r.context.SetRGBA(red, green, blue, debug.FillAlpha)
		r.context.DrawRectangle(s.Rect.X, s.Rect.Y, s.Rect.Width, s.Rect.Height)
		r.context.Fill()
	}

	// Inset the stroke by half its width so it stays inside the cell.
	lw := s.LineWidth
	if lw <= 0 {
		lw = 1
	}
	r.context.SetRGB(red, green, blue)
	r.context.SetLineWidth(lw)
	if s.Inherited {
		r.context.SetDash(4, 2)
	} else {
		r.context.SetDash()
	}
	r.context.DrawRectangle(s.Rect.X+lw/2, s.Rect.Y+lw/2, s.Rect.Width-lw, s.Rect.Height-lw)
	r.context.Stroke()
	r.context.SetDash()

	if r.labels && s.Kind == debug.KindBounds {
		r.context.DrawStringAnchored(s.Cell, s.Rect.X+lw+2, s.Rect.Y+lw+2, 0, 1)
	}
}

// DrawImage draws img stretched over rect. A nil image draws a placeholder.
func (r *Renderer) DrawImage(img image.Image, rect geom.Rect) {
	if rect.Empty() {
		return
	}
	if img == nil {
		// Light gray box with an X for missing images.
		r.context.SetRGB(0.9, 0.9, 0.9)
		r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
		r.context.Fill()

		r.context.SetRGB(0.5, 0.5, 0.5)
		r.context.SetLineWidth(2)
		r.context.DrawLine(rect.X, rect.Y, rect.Right(), rect.Bottom())
		r.context.DrawLine(rect.Right(), rect.Y, rect.X, rect.Bottom())
		r.context.Stroke()
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	r.context.Push()
	r.context.Translate(rect.X, rect.Y)
	r.context.Scale(rect.Width/float64(bounds.Dx()), rect.Height/float64(bounds.Dy()))
	r.context.DrawImage(img, 0, 0)
	r.context.Pop()
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the canvas to filename as PNG.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// EncodePNG writes the canvas to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func channels(c uint32) (float64, float64, float64) {
	return debug.Shape{Color: c}.RGB()
}
