// Package imageprint renders atlas frames on a terminal. UNSUPPORTED
// debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"fmt"
	"image"
	ic "image/color"
	"io"
	"os"

	"github.com/gookit/color"

	"github.com/lambdaxymox/tex-atlas/atlas"
)

// Mode selects how a Printer draws pixels.
type Mode int

const (
	// Mode24Bit draws each pixel as a colored cell using 24-bit
	// background escape sequences.
	Mode24Bit Mode = iota
	// ModeColorCells draws colored cells through the color library's
	// terminal detection instead of raw escapes.
	ModeColorCells
	// ModeNoColor draws ascii shading with no escape sequences.
	ModeNoColor
	// ModeGraphics draws the actual image using whichever terminal
	// graphics protocol is available (kitty, iTerm2/WezTerm, sixel),
	// falling back to Mode24Bit cells.
	ModeGraphics
)

// Printer draws images and atlas frames to a terminal.
type Printer struct {
	// W receives the output. nil means os.Stdout; note that the
	// graphics protocols only make sense on a real terminal.
	W      io.Writer
	Mode   Mode
	Blanks bool // colored blanks instead of ascii shading
}

func (p *Printer) writer() io.Writer {
	if p.W == nil {
		return os.Stdout
	}
	return p.W
}

// Print draws a single image.
func (p *Printer) Print(img image.Image) error {
	if p.Mode == ModeGraphics {
		return p.printGraphics(img)
	}
	p.printCells(img)
	return nil
}

// PrintFrame draws the named frame of the atlas, preceded by a label
// line with the frame's name and geometry.
func (p *Printer) PrintFrame(a *atlas.Atlas, name string) error {
	sub, err := a.SubImage(name)
	if err != nil {
		return err
	}
	f, err := a.Frame(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.writer(), "%s: %dx%d at (%d,%d)\n", f.Name, f.Width, f.Height, f.X, f.Y)
	return p.Print(sub)
}

// PrintAll draws every frame of the atlas in chart order.
func (p *Printer) PrintAll(a *atlas.Atlas) error {
	for name := range a.FrameNames() {
		if err := p.PrintFrame(a, name); err != nil {
			return err
		}
	}
	return nil
}

// printCells draws the image as two-character terminal cells, one per
// pixel.
func (p *Printer) printCells(img image.Image) {
	w := p.writer()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.cell(w, img.At(x, y))
		}
		if p.Mode != ModeNoColor {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
}

func (p *Printer) cell(w io.Writer, col ic.Color) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if p.Mode == ModeNoColor {
			fmt.Fprint(w, "  ")
			return
		}
		fmt.Fprint(w, "\x1b[0m  ")
		return
	}

	var body string
	if p.Blanks && p.Mode != ModeNoColor {
		body = "  "
	} else {
		// Crude luminance ramp for shading.
		switch l := ((cR + cG + cB) / 3) >> 8; {
		case l < 32:
			body = ".."
		case l < 64:
			body = "--"
		case l < 128:
			body = "=="
		default:
			body = "##"
		}
	}

	switch p.Mode {
	case ModeNoColor:
		fmt.Fprint(w, body)
	case ModeColorCells:
		fmt.Fprint(w, color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true).Sprint(body))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), body)
	}
}
