package grid

import (
	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
)

// Content is the capability contract a rendering backend implements for
// anything it attaches to a cell. Implementations must be comparable (usually
// pointers); the engine identifies content by interface equality.
type Content interface {
	// IntrinsicSize is the content's bounding box size in world space with
	// its own transform applied.
	IntrinsicSize() geom.Size
	// WorldScale is the accumulated scale of the content and its ancestors.
	WorldScale() geom.Vector
	// WorldPosition is the content's origin in world space.
	WorldPosition() geom.Point

	SetScale(x, y float64)
	SetPosition(x, y float64)
	// CommitTransform flushes pending transform changes so the getters above
	// reflect them.
	CommitTransform()

	Destroy(args ...any)
}

// Anchored is implemented by content whose bounding box does not start at
// its position (a sprite with a centered anchor, a group whose children sit
// at negative offsets). The engine shifts such content so that its box, not
// its origin, lands on the aligned position.
type Anchored interface {
	// BoundsOrigin is the world-space top-left corner of the bounding box.
	BoundsOrigin() geom.Point
}

// NestedGrid is content that is itself a layout tree. Its root bounds are
// driven by the content area of the cell hosting it.
type NestedGrid interface {
	Content
	Configuration() *layout.CellConfig
	Rebuild(cfg *layout.CellConfig) error
}
