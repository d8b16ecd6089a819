//go:build !windows

package imageprint

import (
	"fmt"
	"image"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
)

// printGraphics draws the image with a terminal graphics protocol.
// Kitty and iTerm2/WezTerm take the image as-is; sixel terminals need
// it quantized to a palette first. Terminals with no graphics support
// get colored cells instead.
func (p *Printer) printGraphics(img image.Image) error {
	w := p.writer()
	if rasterm.IsTermKitty() {
		if err := (rasterm.Settings{}).KittyWriteImage(w, img); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
	if rasterm.IsTermItermWez() {
		if err := (rasterm.Settings{}).ItermWriteImage(w, img); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
	if capable, err := rasterm.IsSixelCapable(); err == nil && capable {
		pal := image.NewPaletted(img.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(pal, img.Bounds(), img, image.Point{})
		if err := (rasterm.Settings{}).SixelWriteImage(w, pal); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
	p.printCells(img)
	return nil
}
