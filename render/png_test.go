package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"logicdraw/model"
)

func TestPNG(t *testing.T) {
	g := model.New(model.DefaultOptions())
	a := g.InsertGate(model.KindAndGate, 0, 0)
	o := g.InsertGate(model.KindOrGate, 100, 50)
	o.ShowPins = true
	out, _ := g.Pin(a.Pins[1])
	in, _ := g.Pin(o.Pins[0])
	g.InsertWire(out, in).Selected = true

	opts := DefaultOptions()
	var buf bytes.Buffer
	if err := PNG(&buf, g, opts); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	// The drawing spans (-6,-6)..(136,86) before padding.
	wantW := int(math.Ceil((142 + 2*opts.Padding) * opts.Scale))
	wantH := int(math.Ceil((92 + 2*opts.Padding) * opts.Scale))
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	// Top-left corner of the first gate is stroked in the foreground.
	px := int((0 - (-6 - opts.Padding)) * opts.Scale)
	py := int((0 - (-6 - opts.Padding)) * opts.Scale)
	r, _, _, _ := img.At(px, py).RGBA()
	if r > 0x8000 {
		t.Errorf("expected a dark gate outline at (%d,%d)", px, py)
	}
}

func TestPNGEmpty(t *testing.T) {
	g := model.New(model.DefaultOptions())
	var buf bytes.Buffer
	if err := PNG(&buf, g, DefaultOptions()); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}

	g.InsertPin(math.NaN(), 0)
	if err := PNG(&buf, g, DefaultOptions()); !errors.Is(err, ErrEmpty) {
		t.Errorf("non-finite only graph: err = %v, want ErrEmpty", err)
	}
}

func TestPNGTooLarge(t *testing.T) {
	g := model.New(model.DefaultOptions())
	g.InsertPin(0, 0)
	g.InsertPin(1e7, 0)
	var buf bytes.Buffer
	if err := PNG(&buf, g, DefaultOptions()); err == nil {
		t.Error("expected a size error")
	}
}

func TestSavePNG(t *testing.T) {
	g := model.New(model.DefaultOptions())
	g.InsertPin(10, 10)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, g, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
}
