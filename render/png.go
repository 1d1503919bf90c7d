// Package render paints an element graph to a PNG image.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"logicdraw/geometry"
	"logicdraw/model"
)

// ErrEmpty is returned when the graph has nothing drawable.
var ErrEmpty = errors.New("nothing to export")

// maxSide bounds either image dimension.
const maxSide = 16384

type Options struct {
	Scale      float64 // pixels per model unit
	Padding    float64 // model units around the drawing
	FontSize   float64
	LineWidth  float64
	Background color.Color
	Foreground color.Color
	Accent     color.Color // selected items
}

func DefaultOptions() Options {
	return Options{
		Scale:      2,
		Padding:    20,
		FontSize:   14,
		LineWidth:  1.5,
		Background: color.White,
		Foreground: color.Black,
		Accent:     color.RGBA{R: 0x1e, G: 0x6f, B: 0xd9, A: 0xff},
	}
}

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// PNG draws g and writes it to w as a PNG.
func PNG(w io.Writer, g *model.Graph, opts Options) error {
	dc, err := draw(g, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG draws g into a PNG file at path.
func SavePNG(path string, g *model.Graph, opts Options) error {
	dc, err := draw(g, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func draw(g *model.Graph, opts Options) (*gg.Context, error) {
	bounds, ok := drawableBounds(g)
	if !ok {
		return nil, ErrEmpty
	}
	minX := bounds.MinX - opts.Padding
	minY := bounds.MinY - opts.Padding
	width := int(math.Ceil((bounds.Width() + 2*opts.Padding) * opts.Scale))
	height := int(math.Ceil((bounds.Height() + 2*opts.Padding) * opts.Scale))
	if width <= 0 || height <= 0 || width > maxSide || height > maxSide {
		return nil, fmt.Errorf("image size %dx%d out of range", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(opts.Background)
	dc.Clear()

	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(-minX, -minY)
	dc.SetLineWidth(opts.LineWidth)

	p := painter{dc: dc, g: g, opts: opts}
	// wires first so gates and pins sit on top
	for _, w := range g.Wires() {
		p.wire(w)
	}
	for _, e := range g.Elements() {
		if gate, ok := e.(*model.Gate); ok {
			p.gate(gate)
		}
	}
	for _, pin := range g.Pins() {
		p.pin(pin)
	}
	return dc, nil
}

// drawableBounds is the union of every element with finite bounds.
func drawableBounds(g *model.Graph) (geometry.Rect, bool) {
	var r geometry.Rect
	found := false
	for _, e := range g.Elements() {
		b := e.Bounds()
		if !finite(b.MinX, b.MinY, b.MaxX, b.MaxY) {
			continue
		}
		if !found {
			r, found = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, found
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type painter struct {
	dc   *gg.Context
	g    *model.Graph
	opts Options
}

func (p painter) color(selected bool) color.Color {
	if selected {
		return p.opts.Accent
	}
	return p.opts.Foreground
}

func (p painter) wire(w *model.Wire) {
	start, err := p.g.Pin(w.Start)
	if err != nil {
		return
	}
	end, err := p.g.Pin(w.End)
	if err != nil {
		return
	}
	if !finite(start.X, start.Y, end.X, end.Y) {
		return
	}
	p.dc.SetColor(p.color(w.Selected))
	p.dc.DrawLine(start.X, start.Y, end.X, end.Y)
	p.dc.Stroke()
}

func (p painter) gate(g *model.Gate) {
	if !finite(g.X, g.Y) {
		return
	}
	p.dc.SetColor(p.color(g.Selected || g.ShowPins))
	p.dc.DrawRectangle(g.X, g.Y, g.Width, g.Height)
	p.dc.Stroke()

	label := "&"
	if g.Type == model.KindOrGate {
		label = "≥" + strconv.Itoa(g.Threshold)
	}
	cx, cy := g.Bounds().Center()
	p.dc.DrawStringAnchored(label, cx, cy, 0.5, 0.35)
}

// pin draws standalone pins always and owned pins only while their gate
// shows its pins.
func (p painter) pin(pin *model.Pin) {
	if !finite(pin.X, pin.Y) {
		return
	}
	if !pin.Standalone() {
		gate, err := p.g.Gate(pin.Parent)
		if err != nil || !gate.ShowPins {
			return
		}
	}
	p.dc.SetColor(p.color(pin.Selected))
	p.dc.DrawCircle(pin.X, pin.Y, pin.Radius)
	if pin.Standalone() && len(pin.Wires) > 2 {
		p.dc.Fill()
		return
	}
	p.dc.Stroke()
}
