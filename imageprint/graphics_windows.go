package imageprint

import "image"

// Terminal graphics protocols are not probed on Windows; colored cells
// are used instead.
func (p *Printer) printGraphics(img image.Image) error {
	p.printCells(img)
	return nil
}
