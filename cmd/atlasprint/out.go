package main

import (
	"image"

	"github.com/nfnt/resize"
)

// fitTerminal shrinks the image to the terminal size when -downsize is
// set. Cell modes get one terminal cell per pixel, so the budget is
// rows/columns; graphics modes render real pixels, so the pixel size
// of the window applies when the terminal reports it.
func fitTerminal(img image.Image) image.Image {
	if !*downsize {
		return img
	}
	ts, err := getTermSize()
	if err != nil {
		return img
	}
	if *graphics && ts.XPixel != 0 && ts.YPixel != 0 {
		return resize.Thumbnail(ts.XPixel/2, ts.YPixel/2, img, resize.Lanczos3)
	}
	if ts.Cols == 0 || ts.Rows == 0 {
		return img
	}
	// Two characters per pixel cell, one row per pixel row.
	return resize.Thumbnail(uint(ts.Cols/2), uint(ts.Rows), img, resize.Lanczos3)
}
