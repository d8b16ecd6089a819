package web

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/lambdaxymox/tex-atlas/atlas"
	"github.com/lambdaxymox/tex-atlas/chart"
)

func testAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	c, err := chart.New(16, 16)
	if err != nil {
		t.Fatalf("chart.New: %v", err)
	}
	c.Add(chart.Frame{Name: "red", X: 0, Y: 0, Width: 8, Height: 8})
	c.Add(chart.Frame{Name: "green", X: 8, Y: 8, Width: 8, Height: 8})

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, image.Rect(0, 0, 8, 8), image.NewUniform(color.RGBA{R: 0xFF, A: 0xFF}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(8, 8, 16, 16), image.NewUniform(color.RGBA{G: 0xFF, A: 0xFF}), image.Point{}, draw.Src)

	a, err := atlas.Assemble(c, img)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return a
}

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	NewHandler(testAtlas(t)).Register(r)
	return r
}

func get(t *testing.T, r *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFrameHandler(t *testing.T) {
	r := testRouter(t)
	rec := get(t, r, "/frame/red.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /frame/red.png = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("frame image is %dx%d, want 8x8", img.Bounds().Dx(), img.Bounds().Dy())
	}
	wantCol := color.RGBA{R: 0xFF, A: 0xFF}
	if got := color.RGBAModel.Convert(img.At(img.Bounds().Min.X, img.Bounds().Min.Y)); got != wantCol {
		t.Errorf("frame pixel = %v, want %v", got, wantCol)
	}
}

func TestFrameHandlerUnknownFrame(t *testing.T) {
	r := testRouter(t)
	if rec := get(t, r, "/frame/missing.png"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /frame/missing.png = %d, want 404", rec.Code)
	}
}

func TestSheetHandler(t *testing.T) {
	r := testRouter(t)
	rec := get(t, r, "/atlas.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /atlas.png = %d, want 200", rec.Code)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("sheet is %dx%d, want 16x16", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestThumbHandler(t *testing.T) {
	r := testRouter(t)
	rec := get(t, r, "/frame/green/thumb.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /frame/green/thumb.png = %d, want 200", rec.Code)
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
}

func TestETagRoundTrip(t *testing.T) {
	r := testRouter(t)
	first := get(t, r, "/frame/red.png")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("response has no ETag")
	}

	req := httptest.NewRequest("GET", "/frame/red.png", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional GET = %d, want 304", rec.Code)
	}
}

func TestPreviewGIFHandler(t *testing.T) {
	r := testRouter(t)
	rec := get(t, r, "/preview.gif")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /preview.gif = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/gif" {
		t.Errorf("Content-Type = %q, want image/gif", ct)
	}
	g, err := gif.DecodeAll(rec.Body)
	if err != nil {
		t.Fatalf("decoding gif: %v", err)
	}
	if len(g.Image) != 2 {
		t.Errorf("gif has %d frames, want 2", len(g.Image))
	}
}

func TestIndexHandler(t *testing.T) {
	r := testRouter(t)
	rec := get(t, r, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"red", "green", "atlas 16x16", "data:image/png"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page does not mention %q", want)
		}
	}
}
