package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrCellNotFound is returned by every name-keyed lookup or attachment
	// whose name is not present in the current tree.
	ErrCellNotFound = errors.New("cell not found")

	// ErrAmbiguousName is returned when a bare name matches more than one cell.
	// Use a slash-separated path to disambiguate.
	ErrAmbiguousName = errors.New("ambiguous cell name")

	// ErrDuplicateName fails a build whose config repeats a sibling name.
	ErrDuplicateName = errors.New("duplicate sibling cell name")

	// ErrInvalidConfig fails a build on malformed input.
	ErrInvalidConfig = errors.New("invalid cell config")

	// ErrDegenerateArea is a warning: bounds or padding produced a non-positive
	// area that was clamped to zero.
	ErrDegenerateArea = errors.New("degenerate area")

	// ErrBoundsOverflow is a warning: resolved bounds reached outside the
	// parent content area and were clipped to it.
	ErrBoundsOverflow = errors.New("bounds overflow parent area")

	// ErrOrphanedContent is a warning: a rebuild removed the cell that held
	// content. The content is detached, not destroyed.
	ErrOrphanedContent = errors.New("orphaned content")

	// ErrInvalidScaleInput is a warning: fit received a zero-sized content
	// dimension and used scale 1 on that axis.
	ErrInvalidScaleInput = errors.New("invalid scale input")
)

// CellNotFoundError identifies the requested name.
type CellNotFoundError struct {
	Name string
}

func (e *CellNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrCellNotFound, e.Name)
}

func (e *CellNotFoundError) Unwrap() error { return ErrCellNotFound }

// Warning is a non-fatal condition raised while building or reconciling. It
// unwraps to its Kind so callers can match with errors.Is.
type Warning struct {
	Kind    error
	Cell    string
	Content any
	Detail  string
}

func (w *Warning) Error() string {
	msg := w.Kind.Error()
	if w.Cell != "" {
		msg = fmt.Sprintf("%s in cell %q", msg, w.Cell)
	}
	if w.Detail != "" {
		msg += ": " + w.Detail
	}
	return msg
}

func (w *Warning) Unwrap() error { return w.Kind }

// WarnFunc receives warnings. A nil WarnFunc discards them.
type WarnFunc func(*Warning)

func (f WarnFunc) emit(w *Warning) {
	if f != nil {
		f(w)
	}
}
