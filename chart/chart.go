package chart

import (
	"fmt"
	"iter"
)

// Frame is a single named sub-rectangle of the atlas image. Offsets are
// measured in pixels from the top left corner of the image.
type Frame struct {
	Name   string
	X, Y   int
	Width  int
	Height int
}

// validate checks the per-frame field constraints. It does not (and can
// not) check that the frame fits inside the atlas image; that needs the
// actual image and happens during assembly.
func (f Frame) validate() error {
	if f.Name == "" {
		return &MalformedError{Reason: "frame with empty name"}
	}
	if f.X < 0 || f.Y < 0 {
		return &MalformedError{Reason: fmt.Sprintf("frame %q has negative offset (%d,%d)", f.Name, f.X, f.Y)}
	}
	if f.Width <= 0 || f.Height <= 0 {
		return &MalformedError{Reason: fmt.Sprintf("frame %q has non-positive size %dx%d", f.Name, f.Width, f.Height)}
	}
	return nil
}

// Chart describes the layout of a texture atlas image: the declared
// pixel dimensions of the image plus the named frames within it.
//
// Frames keep their insertion order, so re-encoding a decoded chart
// reproduces the original frame order. Frame names are case-sensitive
// and unique within a chart.
type Chart struct {
	Width  int
	Height int

	names  []string
	frames map[string]Frame
}

// New constructs an empty chart for an atlas image of the given
// dimensions. Both dimensions must be strictly positive.
func New(width, height int) (*Chart, error) {
	if width <= 0 || height <= 0 {
		return nil, &MalformedError{Reason: fmt.Sprintf("non-positive atlas dimensions %dx%d", width, height)}
	}
	return &Chart{
		Width:  width,
		Height: height,
		frames: map[string]Frame{},
	}, nil
}

// Add appends a frame to the chart. It rejects frames that fail the
// field constraints, and frames whose name is already taken.
func (c *Chart) Add(f Frame) error {
	if err := f.validate(); err != nil {
		return err
	}
	if _, ok := c.frames[f.Name]; ok {
		return &DuplicateNameError{Name: f.Name}
	}
	if c.frames == nil {
		c.frames = map[string]Frame{}
	}
	c.names = append(c.names, f.Name)
	c.frames[f.Name] = f
	return nil
}

// Frame returns the frame with the given name, if present.
func (c *Chart) Frame(name string) (Frame, bool) {
	f, ok := c.frames[name]
	return f, ok
}

// At returns the i-th frame in insertion order, if i is in range.
func (c *Chart) At(i int) (Frame, bool) {
	if i < 0 || i >= len(c.names) {
		return Frame{}, false
	}
	return c.frames[c.names[i]], true
}

// Len returns the number of frames in the chart.
func (c *Chart) Len() int {
	return len(c.names)
}

// Names returns an iterator over frame names in insertion order. The
// returned sequence can be ranged over any number of times.
func (c *Chart) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range c.names {
			if !yield(name) {
				return
			}
		}
	}
}

// Frames returns an iterator over frames in insertion order.
func (c *Chart) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, name := range c.names {
			if !yield(c.frames[name]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the chart. The atlas package snapshots
// charts with this so that an assembled atlas cannot be mutated through
// the chart it was assembled from.
func (c *Chart) Clone() *Chart {
	out := &Chart{
		Width:  c.Width,
		Height: c.Height,
		names:  append([]string(nil), c.names...),
		frames: make(map[string]Frame, len(c.frames)),
	}
	for name, f := range c.frames {
		out.frames[name] = f
	}
	return out
}

// Equal reports whether two charts declare the same dimensions and the
// same frames in the same order.
func (c *Chart) Equal(other *Chart) bool {
	if c.Width != other.Width || c.Height != other.Height || len(c.names) != len(other.names) {
		return false
	}
	for i, name := range c.names {
		if other.names[i] != name || other.frames[name] != c.frames[name] {
			return false
		}
	}
	return true
}
