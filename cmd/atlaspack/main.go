// Command atlaspack packs, unpacks and verifies .atlas files.
//
// Packing takes a chart document (JSON, or YAML for hand authoring)
// plus a PNG sheet and produces a validated .atlas container.
// Unpacking extracts the two container entries verbatim. Verifying
// loads the atlas and prints its frame table.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lambdaxymox/tex-atlas/atlas"
	"github.com/lambdaxymox/tex-atlas/chart"
	"github.com/lambdaxymox/tex-atlas/container"
)

var (
	pack   = flag.Bool("pack", false, "pack -chart and -image into -out")
	unpack = flag.Bool("unpack", false, "extract the entries of -atlas into directory -out")
	verify = flag.Bool("verify", false, "load -atlas and print its frame table")

	chartPath = flag.String("chart", "", "chart document to pack (.json, .yaml or .yml)")
	imagePath = flag.String("image", "", "atlas sheet to pack (.png)")
	atlasPath = flag.String("atlas", "", ".atlas file to unpack or verify")
	outPath   = flag.String("out", "", "output file (pack) or directory (unpack)")
)

// yamlChart is the hand-authoring schema. Frames are a list, not a
// map, so that author order survives into the packed chart.
type yamlChart struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Frames []struct {
		Name   string `yaml:"name"`
		X      int    `yaml:"x"`
		Y      int    `yaml:"y"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"frames"`
}

func readChart(path string) (*chart.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading chart document")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var yc yamlChart
		if err := yaml.Unmarshal(data, &yc); err != nil {
			return nil, errors.Wrap(err, "parsing yaml chart")
		}
		c, err := chart.New(yc.Width, yc.Height)
		if err != nil {
			return nil, err
		}
		for _, f := range yc.Frames {
			if err := c.Add(chart.Frame{Name: f.Name, X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}); err != nil {
				return nil, err
			}
		}
		return c, nil
	default:
		return chart.Decode(data)
	}
}

func doPack() error {
	if *chartPath == "" || *imagePath == "" || *outPath == "" {
		return errors.New("pack needs -chart, -image and -out")
	}
	c, err := readChart(*chartPath)
	if err != nil {
		return err
	}
	f, err := os.Open(*imagePath)
	if err != nil {
		return errors.Wrap(err, "opening atlas sheet")
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return errors.Wrap(err, "decoding atlas sheet")
	}
	a, err := atlas.FromImage(c, img)
	if err != nil {
		return err
	}
	glog.Infof("packing %d frames into %q", a.FrameCount(), *outPath)
	return atlas.SaveFile(*outPath, a)
}

func doUnpack() error {
	if *atlasPath == "" || *outPath == "" {
		return errors.New("unpack needs -atlas and -out")
	}
	data, err := os.ReadFile(*atlasPath)
	if err != nil {
		return errors.Wrap(err, "reading atlas container")
	}
	chartData, imageData, err := container.ReadBytes(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outPath, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	if err := os.WriteFile(filepath.Join(*outPath, container.ChartEntryName), chartData, 0644); err != nil {
		return errors.Wrap(err, "writing chart entry")
	}
	if err := os.WriteFile(filepath.Join(*outPath, container.ImageEntryName), imageData, 0644); err != nil {
		return errors.Wrap(err, "writing image entry")
	}
	glog.Infof("unpacked %q into %q", *atlasPath, *outPath)
	return nil
}

func doVerify() error {
	if *atlasPath == "" {
		return errors.New("verify needs -atlas")
	}
	a, err := atlas.LoadFile(*atlasPath)
	if err != nil {
		return err
	}
	w, h := a.Dimensions()
	fmt.Printf("%s: %dx%d, %d frames\n", *atlasPath, w, h, a.FrameCount())
	if !a.PowerOfTwoDimensions() {
		fmt.Printf("note: dimensions are not powers of two\n")
	}
	for name := range a.FrameNames() {
		f, err := a.Frame(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-24s %4dx%-4d at (%d,%d)\n", f.Name, f.Width, f.Height, f.X, f.Y)
	}
	return nil
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	modes := 0
	for _, m := range []bool{*pack, *unpack, *verify} {
		if m {
			modes++
		}
	}
	if modes != 1 {
		glog.Exitf("exactly one of -pack, -unpack, -verify must be given")
	}

	var err error
	switch {
	case *pack:
		err = doPack()
	case *unpack:
		err = doUnpack()
	case *verify:
		err = doVerify()
	}
	if err != nil {
		glog.Exitf("%v", err)
	}
}
