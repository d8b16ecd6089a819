package atlas

import (
	"fmt"

	"github.com/lambdaxymox/tex-atlas/chart"
)

// DimensionMismatchError reports a chart whose declared dimensions do
// not match the actual pixel dimensions of the atlas image.
type DimensionMismatchError struct {
	DeclaredWidth, DeclaredHeight int
	ActualWidth, ActualHeight     int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("atlas: chart declares %dx%d but image is %dx%d",
		e.DeclaredWidth, e.DeclaredHeight, e.ActualWidth, e.ActualHeight)
}

// FrameOutOfBoundsError reports a frame rectangle that does not fit
// inside the atlas image.
type FrameOutOfBoundsError struct {
	Frame                   chart.Frame
	AtlasWidth, AtlasHeight int
}

func (e *FrameOutOfBoundsError) Error() string {
	return fmt.Sprintf("atlas: frame %q at (%d,%d) size %dx%d exceeds atlas bounds %dx%d",
		e.Frame.Name, e.Frame.X, e.Frame.Y, e.Frame.Width, e.Frame.Height,
		e.AtlasWidth, e.AtlasHeight)
}

// UnknownFrameError reports a lookup of a frame name the atlas does not
// contain. This is a query-time condition; callers may recover from it
// (say, by substituting a placeholder sprite).
type UnknownFrameError struct {
	Name string
}

func (e *UnknownFrameError) Error() string {
	return fmt.Sprintf("atlas: no frame named %q", e.Name)
}

// IndexOutOfRangeError reports a positional frame lookup outside
// [0, Count).
type IndexOutOfRangeError struct {
	Index, Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("atlas: frame index %d out of range (atlas has %d frames)", e.Index, e.Count)
}
