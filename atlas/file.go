package atlas

// This file contains the entry points tying the container, the chart
// codec and the image codec together into load and save paths.

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/lambdaxymox/tex-atlas/chart"
	"github.com/lambdaxymox/tex-atlas/container"
)

// Load reads a .atlas container from r and assembles the atlas.
func Load(r io.Reader) (*Atlas, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading atlas container")
	}
	return LoadBytes(data)
}

// LoadBytes assembles an atlas from an in-memory .atlas container.
func LoadBytes(data []byte) (*Atlas, error) {
	chartData, imageData, err := container.ReadBytes(data)
	if err != nil {
		return nil, err
	}
	c, err := chart.Decode(chartData)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.Wrap(err, "decoding atlas image")
	}
	glog.V(1).Infof("atlas: decoded %dx%d image, chart has %d frames",
		img.Bounds().Dx(), img.Bounds().Dy(), c.Len())
	return Assemble(c, toRGBA(img))
}

// LoadFile assembles an atlas from a .atlas file on disk.
func LoadFile(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening atlas file")
	}
	defer f.Close()
	a, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %q", path)
	}
	return a, nil
}

// Save writes the atlas to w as a .atlas container. Saving an atlas
// that was loaded from a container reproduces the frame order and
// pixel content of the original.
func Save(w io.Writer, a *Atlas) error {
	chartData, err := chart.Encode(a.c)
	if err != nil {
		return errors.Wrap(err, "encoding coordinate chart")
	}
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, a.img); err != nil {
		return errors.Wrap(err, "encoding atlas image")
	}
	return container.Write(w, chartData, imgBuf.Bytes())
}

// SaveFile writes the atlas to a .atlas file on disk.
func SaveFile(path string, a *Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating atlas file")
	}
	if err := Save(f, a); err != nil {
		f.Close()
		return errors.Wrapf(err, "saving %q", path)
	}
	return f.Close()
}

// FromImage assembles an atlas from a chart and any decoded image,
// converting the pixels to the atlas's RGBA layout first.
func FromImage(c *chart.Chart, img image.Image) (*Atlas, error) {
	return Assemble(c, toRGBA(img))
}

// toRGBA normalizes whatever color model the image codec produced to
// the 8-bit RGBA buffer the atlas owns, with bounds at the origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
