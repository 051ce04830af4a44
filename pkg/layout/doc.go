// Package layout implements the geometry core of the cell grid: the cell tree
// builder, the fit (scale) algorithm and the align algorithm.
//
// A [CellConfig] tree is resolved by [BuildTree] into a tree of [Cell]s. Each
// cell has absolute Bounds inside its parent's content area and an Area, the
// bounds minus padding, that its children and attached content live in.
//
// Bounds fields in [0,1] are fractions of the parent content area; other
// values, and values built with [Px], are units. Omitted fields fill the
// space left by earlier siblings:
//
//	{Name: "main_1", Bounds: layout.Fraction(0, 0, 0.5, 1)}
//	{Name: "main_2", Bounds: layout.Bounds{X: layout.Val(0.5), Y: layout.Val(0)}} // takes the other half
//
// Coordinates follow the screen convention used by [geom]: X grows right and
// Y grows down, so [AlignLeftTop] places content at the area origin.
//
// Nothing in this package touches content. Attaching content and rebuilding
// trees is the job of package grid.
package layout
