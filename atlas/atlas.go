package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"iter"

	"github.com/golang/glog"

	"github.com/lambdaxymox/tex-atlas/chart"
)

// Atlas is an assembled texture atlas: an RGBA pixel buffer together
// with a coordinate chart that has been validated against it. It is
// immutable after assembly.
type Atlas struct {
	img *image.RGBA
	c   *chart.Chart
}

// Assemble cross-validates a chart against a decoded atlas image and
// builds the runtime atlas.
//
// Validation fails on the first violation; there is no partial
// assembly with offending frames dropped, since consumers index frames
// by trusted name and a silently missing frame is a worse failure than
// a loud one. The chart is snapshotted, so mutating c afterwards does
// not affect the returned atlas. An image with bounds at the origin is
// not copied: the caller hands over ownership and must not write to it
// after assembly. An image with a translated origin (a sub-image view,
// say) is copied into an origin-anchored buffer, since frame
// rectangles are addressed from (0,0).
func Assemble(c *chart.Chart, img *image.RGBA) (*Atlas, error) {
	if c == nil || img == nil {
		return nil, fmt.Errorf("atlas: assemble needs a chart and an image")
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if img.Bounds().Min != (image.Point{}) {
		norm := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(norm, norm.Bounds(), img, img.Bounds().Min, draw.Src)
		img = norm
	}
	if c.Width != w || c.Height != h {
		return nil, &DimensionMismatchError{
			DeclaredWidth:  c.Width,
			DeclaredHeight: c.Height,
			ActualWidth:    w,
			ActualHeight:   h,
		}
	}
	// Chart construction already rejects duplicates; re-checking here
	// keeps the invariant local to assembly instead of relying on how
	// the chart was built.
	seen := make(map[string]bool, c.Len())
	for f := range c.Frames() {
		if seen[f.Name] {
			return nil, &chart.DuplicateNameError{Name: f.Name}
		}
		seen[f.Name] = true
		// Phrased to avoid overflow: f.X+f.Width can wrap for huge
		// offsets, which would let an out-of-bounds frame through.
		if f.Width > w || f.X > w-f.Width || f.Height > h || f.Y > h-f.Height {
			return nil, &FrameOutOfBoundsError{Frame: f, AtlasWidth: w, AtlasHeight: h}
		}
	}
	a := &Atlas{img: img, c: c.Clone()}
	if !a.PowerOfTwoDimensions() {
		// Not an error: some GPU targets just mipmap these poorly.
		glog.Warningf("atlas: dimensions %dx%d are not powers of two", w, h)
	}
	return a, nil
}

// New assembles an atlas from in-memory parts. It is Assemble under a
// constructor name, for callers building atlases through the API
// rather than loading them from a container.
func New(c *chart.Chart, img *image.RGBA) (*Atlas, error) {
	return Assemble(c, img)
}

// FrameCount returns the number of frames in the atlas.
func (a *Atlas) FrameCount() int {
	return a.c.Len()
}

// FrameNames returns an iterator over frame names in chart order. The
// sequence is finite and can be ranged over repeatedly.
func (a *Atlas) FrameNames() iter.Seq[string] {
	return a.c.Names()
}

// Frame returns the frame record with the given name.
func (a *Atlas) Frame(name string) (chart.Frame, error) {
	f, ok := a.c.Frame(name)
	if !ok {
		return chart.Frame{}, &UnknownFrameError{Name: name}
	}
	return f, nil
}

// FrameAt returns the i-th frame record in chart order.
func (a *Atlas) FrameAt(i int) (chart.Frame, error) {
	f, ok := a.c.At(i)
	if !ok {
		return chart.Frame{}, &IndexOutOfRangeError{Index: i, Count: a.c.Len()}
	}
	return f, nil
}

// SubImage returns the pixels of the named frame as a view into the
// atlas image, not a copy. The view's bounds sit at the frame's
// rectangle within the atlas, and its dimensions equal the frame's
// size. Callers that need an isolated buffer should copy it out.
func (a *Atlas) SubImage(name string) (*image.RGBA, error) {
	f, err := a.Frame(name)
	if err != nil {
		return nil, err
	}
	r := image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
	return a.img.SubImage(r).(*image.RGBA), nil
}

// Dimensions returns the pixel dimensions of the whole atlas image.
func (a *Atlas) Dimensions() (width, height int) {
	return a.c.Width, a.c.Height
}

// Image returns the whole atlas image. The atlas retains ownership;
// treat it as read-only.
func (a *Atlas) Image() *image.RGBA {
	return a.img
}

// Chart returns a copy of the atlas's coordinate chart, suitable for
// building a modified atlas.
func (a *Atlas) Chart() *chart.Chart {
	return a.c.Clone()
}

// PowerOfTwoDimensions reports whether both atlas dimensions are
// powers of two.
func (a *Atlas) PowerOfTwoDimensions() bool {
	return powerOfTwo(a.c.Width) && powerOfTwo(a.c.Height)
}

func powerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
