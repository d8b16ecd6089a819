// Command atlasprint previews .atlas files on the terminal.
package main

import (
	"flag"
	"fmt"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"

	"github.com/lambdaxymox/tex-atlas/atlas"
	"github.com/lambdaxymox/tex-atlas/imageprint"
)

var (
	atlasPath = flag.String("atlas", "", ".atlas file to preview")
	frameName = flag.String("frame", "", "name of the frame to print")
	frameIdx  = flag.Int("index", -1, "index of the frame to print")
	all       = flag.Bool("all", false, "print every frame")
	list      = flag.Bool("list", false, "list frames without printing pixels")
	sheet     = flag.Bool("sheet", false, "print the whole atlas sheet")

	graphics = flag.Bool("graphics", false, "use the terminal graphics protocol (kitty/iterm/sixel) if available")
	cells    = flag.Bool("cells", false, "use color-library cells instead of raw 24 bit escapes")
	nocolor  = flag.Bool("nocolor", false, "ascii shading without color escapes")
	blanks   = flag.Bool("blanks", true, "colored blanks instead of ascii shading")
	downsize = flag.Bool("downsize", true, "shrink large images to the terminal size before printing")
)

func printer() *imageprint.Printer {
	p := &imageprint.Printer{Blanks: *blanks}
	switch {
	case *graphics:
		p.Mode = imageprint.ModeGraphics
	case *cells:
		p.Mode = imageprint.ModeColorCells
	case *nocolor:
		p.Mode = imageprint.ModeNoColor
	default:
		p.Mode = imageprint.Mode24Bit
	}
	return p
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *atlasPath == "" {
		glog.Exitf("-atlas is required")
	}
	a, err := atlas.LoadFile(*atlasPath)
	if err != nil {
		glog.Exitf("%v", err)
	}

	if *list {
		for name := range a.FrameNames() {
			f, _ := a.Frame(name)
			fmt.Printf("%-24s %4dx%-4d at (%d,%d)\n", f.Name, f.Width, f.Height, f.X, f.Y)
		}
		return
	}

	p := printer()
	switch {
	case *sheet:
		err = p.Print(fitTerminal(a.Image()))
	case *all:
		err = p.PrintAll(a)
	case *frameName != "":
		err = p.PrintFrame(a, *frameName)
	case *frameIdx >= 0:
		f, fErr := a.FrameAt(*frameIdx)
		if fErr != nil {
			glog.Exitf("%v", fErr)
		}
		err = p.PrintFrame(a, f.Name)
	default:
		glog.Exitf("one of -sheet, -all, -frame, -index, -list must be given")
	}
	if err != nil {
		glog.Exitf("%v", err)
	}
}
