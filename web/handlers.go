// Package web serves an assembled atlas for preview in a browser:
// the whole sheet, individual frames, thumbnails, and an animated
// cycle through all frames.
package web

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"html/template"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"

	"github.com/andybons/gogif"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/vincent-petithory/dataurl"

	"github.com/lambdaxymox/tex-atlas/atlas"
	"github.com/lambdaxymox/tex-atlas/chart"
)

const thumbSize = 96

// Handler serves preview routes over one assembled atlas. The atlas is
// immutable, so the handler needs no locking and its cache validator
// can be computed once up front.
type Handler struct {
	a    *atlas.Atlas
	etag string
}

// NewHandler constructs a preview handler for the passed atlas.
func NewHandler(a *atlas.Atlas) *Handler {
	return &Handler{a: a, etag: computeETag(a)}
}

// Register attaches the preview routes to the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/atlas.png", h.sheetHandler)
	r.HandleFunc("/preview.gif", h.previewGIFHandler)
	r.HandleFunc("/frame/{name}.png", h.frameHandler)
	r.HandleFunc("/frame/{name}/thumb.png", h.thumbHandler)
}

func computeETag(a *atlas.Atlas) string {
	generation := 1 // bump if the way previews are generated changes
	sum := crc32.NewIEEE()
	chart.EncodeTo(sum, a.Chart())
	sum.Write(a.Image().Pix)
	return fmt.Sprintf(`W/"atlas:%d:%08x"`, generation, sum.Sum32())
}

// maybeServeCached writes validator headers and reports whether the
// client already has the current content.
func (h *Handler) maybeServeCached(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("ETag", h.etag)
	w.Header().Set("Cache-Control", "public; max-age=3600")
	if r.Header.Get("If-None-Match") == h.etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handler) sheetHandler(w http.ResponseWriter, r *http.Request) {
	if h.maybeServeCached(w, r) {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, h.a.Image())
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.frameFromRequest(w, r)
	if !ok {
		return
	}
	if h.maybeServeCached(w, r) {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, sub)
}

func (h *Handler) thumbHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.frameFromRequest(w, r)
	if !ok {
		return
	}
	if h.maybeServeCached(w, r) {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, resize.Thumbnail(thumbSize, thumbSize, sub, resize.Lanczos3))
}

// frameFromRequest resolves the {name} route variable to a frame
// sub-image, writing the error response itself when resolution fails.
func (h *Handler) frameFromRequest(w http.ResponseWriter, r *http.Request) (*image.RGBA, bool) {
	name := mux.Vars(r)["name"]
	sub, err := h.a.SubImage(name)
	if err != nil {
		glog.V(1).Infof("web: frame request %q: %v", name, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return sub, true
}

// previewGIFHandler cycles through every frame of the atlas as an
// animated GIF, one frame per half second, on a canvas sized to the
// largest frame.
func (h *Handler) previewGIFHandler(w http.ResponseWriter, r *http.Request) {
	if h.a.FrameCount() == 0 {
		http.Error(w, "atlas has no frames", http.StatusNotFound)
		return
	}
	if h.maybeServeCached(w, r) {
		return
	}

	var cw, ch int
	for i := 0; i < h.a.FrameCount(); i++ {
		f, _ := h.a.FrameAt(i)
		cw = max(cw, f.Width)
		ch = max(ch, f.Height)
	}

	g := gif.GIF{}
	quantizer := gogif.MedianCutQuantizer{NumColor: 255} // up to 255 colors plus one slot for transparency
	for name := range h.a.FrameNames() {
		sub, err := h.a.SubImage(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		canvas := image.NewRGBA(image.Rect(0, 0, cw, ch))
		draw.Draw(canvas, sub.Bounds().Sub(sub.Bounds().Min), sub, sub.Bounds().Min, draw.Src)

		pal := image.NewPaletted(canvas.Bounds(), nil)
		quantizer.Quantize(pal, canvas.Bounds(), canvas, image.Point{})

		// The quantizer does not reserve a transparent slot, so redraw
		// onto a palette that leads with color.Transparent.
		palTransparent := image.NewPaletted(canvas.Bounds(), append(color.Palette{color.Transparent}, pal.Palette...))
		draw.Draw(palTransparent, canvas.Bounds(), canvas, image.Point{}, draw.Over)

		g.Image = append(g.Image, palTransparent)
		g.Delay = append(g.Delay, 50)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	g.BackgroundIndex = 0

	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	gif.EncodeAll(w, &g)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>atlas preview</title></head>
<body>
<h1>atlas {{.Width}}x{{.Height}}, {{len .Frames}} frames</h1>
<p><a href="atlas.png">full sheet</a> | <a href="preview.gif">animated preview</a></p>
<table border="1" cellpadding="4">
<tr><th>frame</th><th>x</th><th>y</th><th>width</th><th>height</th><th>thumbnail</th></tr>
{{range .Frames}}<tr>
<td><a href="frame/{{.Name}}.png">{{.Name}}</a></td>
<td>{{.X}}</td><td>{{.Y}}</td><td>{{.Width}}</td><td>{{.Height}}</td>
<td><img src="{{.Thumb}}" alt="{{.Name}}"></td>
</tr>
{{end}}</table>
</body>
</html>
`))

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	type frameRow struct {
		Name                string
		X, Y, Width, Height int
		// template.URL, or the template engine rejects the data: scheme.
		Thumb template.URL
	}
	var data struct {
		Width, Height int
		Frames        []frameRow
	}
	data.Width, data.Height = h.a.Dimensions()

	for name := range h.a.FrameNames() {
		f, err := h.a.Frame(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sub, err := h.a.SubImage(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, resize.Thumbnail(thumbSize, thumbSize, sub, resize.Lanczos3)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Frames = append(data.Frames, frameRow{
			Name:  f.Name,
			X:     f.X,
			Y:     f.Y,
			Width: f.Width, Height: f.Height,
			Thumb: template.URL(dataurl.New(buf.Bytes(), "image/png").String()),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		glog.Errorf("web: rendering index: %v", err)
	}
}
