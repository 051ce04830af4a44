// Package grid attaches content to the cells of a layout tree and keeps it
// placed when the tree is rebuilt.
//
// A host adapter owns a [Grid], forwards resize and orientation events as
// [Grid.Rebuild] calls, and attaches content implementing [Content]. Content
// that implements [NestedGrid] is laid out as a tree of its own inside the
// hosting cell.
//
// A Grid is single-threaded: every method runs to completion before
// returning and none may be called concurrently or from inside another call
// on the same Grid.
package grid

import (
	"errors"
	"fmt"
	"log"

	"cellgrid/pkg/debug"
	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
)

var (
	// ErrNotBuilt is returned by operations that need a tree before Build
	// has succeeded.
	ErrNotBuilt = errors.New("grid not built")

	// ErrReentrant is returned when a Grid method is invoked while another one
	// is still running on the same Grid.
	ErrReentrant = errors.New("re-entrant grid call")
)

// Orphan is content detached by a rebuild whose new tree lacks its cell.
type Orphan struct {
	Cell     string
	Content  Content
	Override layout.ContentConfig
}

// Grid is the layout engine instance owned by one host.
type Grid struct {
	root     *layout.Cell
	config   *layout.CellConfig
	viewport func() geom.Rect
	logger   *log.Logger
	onWarn   func(*layout.Warning)
	orphans  []Orphan
	busy     bool
}

// Option configures a Grid.
type Option func(*Grid)

// WithViewport sets the root bounds provider that root configs without
// callback bounds resolve against.
func WithViewport(f func() geom.Rect) Option {
	return func(g *Grid) { g.viewport = f }
}

// WithLogger sets the logger used by the default warning handler.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) { g.logger = l }
}

// WithWarningHandler routes warnings to f instead of the logger.
func WithWarningHandler(f func(*layout.Warning)) Option {
	return func(g *Grid) { g.onWarn = f }
}

// New creates an empty Grid.
func New(opts ...Option) *Grid {
	g := &Grid{logger: log.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetViewport replaces the root bounds provider. It takes effect on the next
// Build or Rebuild.
func (g *Grid) SetViewport(f func() geom.Rect) {
	g.viewport = f
}

// Root returns the current tree, or nil before the first Build.
func (g *Grid) Root() *layout.Cell {
	return g.root
}

// Configuration returns the config the current tree was built from.
func (g *Grid) Configuration() *layout.CellConfig {
	return g.config
}

// Orphans returns content detached by rebuilds and not yet re-homed with
// SetChild or released with DestroyChild.
func (g *Grid) Orphans() []Orphan {
	out := make([]Orphan, len(g.orphans))
	copy(out, g.orphans)
	return out
}

// Overlay describes the current tree for a debug renderer.
func (g *Grid) Overlay() []debug.Shape {
	if g.root == nil {
		return nil
	}
	return debug.Overlay(g.root)
}

// Build creates a fresh tree from cfg. Content attached to a previous tree is
// reported as orphaned; use Rebuild to keep it attached.
func (g *Grid) Build(cfg *layout.CellConfig) error {
	if err := g.enter(); err != nil {
		return err
	}
	defer g.leave()

	old := g.root
	if err := g.build(cfg); err != nil {
		return err
	}
	if old != nil {
		for _, s := range snapshot(old) {
			g.orphan(s, "tree replaced by Build")
		}
	}
	return nil
}

// Rebuild discards the tree, builds a new one from cfg (or from the cached
// config when cfg is nil) and reattaches every content item to the cell of
// the same name, recomputing its geometry. Content whose cell disappeared is
// reported with an ErrOrphanedContent warning and kept in Orphans. A failed
// build leaves the previous tree in place.
func (g *Grid) Rebuild(cfg *layout.CellConfig) error {
	if err := g.enter(); err != nil {
		return err
	}
	defer g.leave()

	if cfg == nil {
		cfg = g.config
	}
	if cfg == nil {
		return ErrNotBuilt
	}

	var snaps []snap
	if g.root != nil {
		snaps = snapshot(g.root)
	}
	if err := g.build(cfg); err != nil {
		return err
	}

	var errs []error
	for _, s := range snaps {
		cell := g.resolve(s)
		if cell == nil {
			g.orphan(s, "")
			continue
		}
		if err := g.attach(cell, s.content, s.override); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetChild attaches content to the named cell, moving it if it is attached
// elsewhere. override, when given, replaces the cell's placement rules field
// by field. Unknown names fail with a *layout.CellNotFoundError.
func (g *Grid) SetChild(name string, content Content, override ...layout.ContentConfig) error {
	if err := g.enter(); err != nil {
		return err
	}
	defer g.leave()

	if g.root == nil {
		return ErrNotBuilt
	}
	cell, err := g.root.Find(name)
	if err != nil {
		return err
	}

	var cfg layout.ContentConfig
	if len(override) > 0 {
		cfg = override[0]
	}
	g.detach(content)
	return g.attach(cell, content, cfg)
}

// DestroyChild detaches content from whichever cell holds it, or from the
// orphan list, and forwards args to its Destroy. Content that was never
// attached is left alone.
func (g *Grid) DestroyChild(content Content, args ...any) error {
	if err := g.enter(); err != nil {
		return err
	}
	defer g.leave()

	if g.detach(content) {
		content.Destroy(args...)
	}
	return nil
}

// CellByName looks name up in the current tree. A slash-separated path
// disambiguates cells whose names repeat in different branches.
func (g *Grid) CellByName(name string) (*layout.Cell, error) {
	if g.root == nil {
		return nil, ErrNotBuilt
	}
	return g.root.Find(name)
}

// CellBoundsByName returns the bounds of the named cell.
func (g *Grid) CellBoundsByName(name string) (geom.Rect, error) {
	c, err := g.CellByName(name)
	if err != nil {
		return geom.Rect{}, err
	}
	return c.Bounds, nil
}

// CellContentAreaByName returns the content area of the named cell.
func (g *Grid) CellContentAreaByName(name string) (geom.Rect, error) {
	c, err := g.CellByName(name)
	if err != nil {
		return geom.Rect{}, err
	}
	return c.Area, nil
}

// CellByContent returns the cell holding content.
func (g *Grid) CellByContent(content Content) (*layout.Cell, bool) {
	if g.root == nil {
		return nil, false
	}
	c, _ := g.root.FindContent(content)
	return c, c != nil
}

func (g *Grid) enter() error {
	if g.busy {
		return ErrReentrant
	}
	g.busy = true
	return nil
}

func (g *Grid) leave() {
	g.busy = false
}

func (g *Grid) build(cfg *layout.CellConfig) error {
	var parent geom.Rect
	if g.viewport != nil {
		parent = g.viewport()
	}
	root, err := layout.BuildTree(cfg, parent, g.warn)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	g.root, g.config = root, cfg
	return nil
}

func (g *Grid) warn(w *layout.Warning) {
	if g.onWarn != nil {
		g.onWarn(w)
		return
	}
	g.logger.Printf("WARN: %v", w)
}

// snap is one attachment captured before a rebuild.
type snap struct {
	path     string
	name     string
	content  Content
	override layout.ContentConfig
}

func snapshot(root *layout.Cell) []snap {
	var out []snap
	for _, c := range root.Cells() {
		path := c.Path()
		for _, e := range c.Contents {
			content, ok := e.Content.(Content)
			if !ok {
				continue
			}
			out = append(out, snap{path: path, name: c.Name, content: content, override: e.Override})
		}
	}
	return out
}

// resolve finds the cell a snapshot entry belongs to in the new tree: the
// same path first, then the same name when it is unique.
func (g *Grid) resolve(s snap) *layout.Cell {
	if c, err := g.root.Find(s.path); err == nil {
		return c
	}
	if c, err := g.root.Find(s.name); err == nil {
		return c
	}
	return nil
}

func (g *Grid) orphan(s snap, detail string) {
	g.orphans = append(g.orphans, Orphan{Cell: s.name, Content: s.content, Override: s.override})
	g.warn(&layout.Warning{
		Kind:    layout.ErrOrphanedContent,
		Cell:    s.name,
		Content: s.content,
		Detail:  detail,
	})
}

// detach removes content from the tree and the orphan list and reports
// whether it was held anywhere.
func (g *Grid) detach(content Content) bool {
	held := false
	if g.root != nil && g.root.RemoveContent(content) != nil {
		held = true
	}
	for i, o := range g.orphans {
		if o.Content == content {
			g.orphans = append(g.orphans[:i:i], g.orphans[i+1:]...)
			held = true
			break
		}
	}
	return held
}
