package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logicdraw/editor"
	"logicdraw/model"
)

// Canvas is a character grid the diagram is rasterized onto. Each cell
// covers cellWidth x cellHeight screen units.
type Canvas struct {
	cols, rows int
	cells      [][]rune
	accent     [][]bool
}

func NewCanvas(cols, rows int) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	c := &Canvas{cols: cols, rows: rows}
	c.cells = make([][]rune, rows)
	c.accent = make([][]bool, rows)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", cols))
		c.accent[y] = make([]bool, cols)
	}
	return c
}

func (c *Canvas) isValidPos(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.cols && y < c.rows
}

func (c *Canvas) set(x, y int, r rune, selected bool) {
	if !c.isValidPos(x, y) {
		return
	}
	c.cells[y][x] = r
	c.accent[y][x] = selected
}

// cellAt maps a screen point to the cell containing it.
func cellAt(sx, sy float64) (int, int) {
	return int(math.Floor(sx / cellWidth)), int(math.Floor(sy / cellHeight))
}

// screenAt maps a cell to the screen point at its centre.
func screenAt(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}

// Draw rasterizes g as seen through view. Wires go first so that gates and
// pins are drawn over them.
func (c *Canvas) Draw(g *model.Graph, view editor.Transform) {
	toCell := func(x, y float64) (int, int, bool) {
		sx, sy := view.ToScreen(x, y)
		if math.IsNaN(sx) || math.IsNaN(sy) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
			return 0, 0, false
		}
		// keep far-off points from overflowing int conversion
		sx = math.Max(math.Min(sx, 1e7), -1e7)
		sy = math.Max(math.Min(sy, 1e7), -1e7)
		col, row := cellAt(sx, sy)
		return col, row, true
	}

	for _, w := range g.Wires() {
		start, err := g.Pin(w.Start)
		if err != nil {
			continue
		}
		end, err := g.Pin(w.End)
		if err != nil {
			continue
		}
		x0, y0, ok0 := toCell(start.X, start.Y)
		x1, y1, ok1 := toCell(end.X, end.Y)
		if ok0 && ok1 {
			c.drawLine(x0, y0, x1, y1, w.Selected)
		}
	}

	for _, el := range g.Elements() {
		gate, ok := el.(*model.Gate)
		if !ok {
			continue
		}
		x0, y0, ok0 := toCell(gate.X, gate.Y)
		x1, y1, ok1 := toCell(gate.X+gate.Width, gate.Y+gate.Height)
		if ok0 && ok1 {
			c.drawGate(gate, x0, y0, x1, y1)
		}
	}

	for _, pin := range g.Pins() {
		if !pin.Standalone() {
			gate, err := g.Gate(pin.Parent)
			if err != nil || !gate.ShowPins {
				continue
			}
		}
		x, y, ok := toCell(pin.X, pin.Y)
		if !ok {
			continue
		}
		r := 'o'
		if pin.Standalone() && len(pin.Wires) > 2 {
			r = '●'
		}
		c.set(x, y, r, pin.Selected)
	}
}

// drawLine walks the cells between two points, picking a glyph from the
// overall slope.
func (c *Canvas) drawLine(x0, y0, x1, y1 int, selected bool) {
	dx, dy := x1-x0, y1-y0
	glyph := '─'
	switch {
	case dx == 0 && dy == 0:
		return
	case dx == 0 || abs(dy) > 2*abs(dx):
		glyph = '│'
	case dy == 0 || abs(dx) > 2*abs(dy):
		glyph = '─'
	case (dx > 0) == (dy > 0):
		glyph = '╲'
	default:
		glyph = '╱'
	}

	steps := max(abs(dx), abs(dy))
	if steps > 4*(c.cols+c.rows) {
		// clip long lines to the part that can be on screen
		c.drawClipped(x0, y0, x1, y1, glyph, selected)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + int(math.Round(float64(dx*i)/float64(steps)))
		y := y0 + int(math.Round(float64(dy*i)/float64(steps)))
		c.set(x, y, glyph, selected)
	}
}

func (c *Canvas) drawClipped(x0, y0, x1, y1 int, glyph rune, selected bool) {
	fx0, fy0 := float64(x0), float64(y0)
	fdx, fdy := float64(x1-x0), float64(y1-y0)
	steps := math.Max(math.Abs(fdx), math.Abs(fdy))
	for x := 0; x < c.cols; x++ {
		if fdx == 0 {
			break
		}
		t := (float64(x) - fx0) / fdx
		if t >= 0 && t <= 1 {
			c.set(x, int(math.Round(fy0+t*fdy)), glyph, selected)
		}
	}
	for y := 0; y < c.rows; y++ {
		if fdy == 0 || steps == 0 {
			break
		}
		t := (float64(y) - fy0) / fdy
		if t >= 0 && t <= 1 {
			c.set(int(math.Round(fx0+t*fdx)), y, glyph, selected)
		}
	}
}

func (c *Canvas) drawGate(g *model.Gate, x0, y0, x1, y1 int) {
	selected := g.Selected || g.ShowPins
	if x1-x0 < 2 || y1-y0 < 2 {
		// zoomed out too far for a frame
		c.set(x0, y0, gateGlyph(g), selected)
		return
	}
	for x := max(x0, -1); x <= min(x1, c.cols); x++ {
		c.set(x, y0, '─', selected)
		c.set(x, y1, '─', selected)
	}
	for y := max(y0, -1); y <= min(y1, c.rows); y++ {
		c.set(x0, y, '│', selected)
		c.set(x1, y, '│', selected)
	}
	c.set(x0, y0, '┌', selected)
	c.set(x1, y0, '┐', selected)
	c.set(x0, y1, '└', selected)
	c.set(x1, y1, '┘', selected)

	// blank the inside so wires passing under the gate stay hidden
	for y := max(y0+1, 0); y < min(y1, c.rows); y++ {
		for x := max(x0+1, 0); x < min(x1, c.cols); x++ {
			c.set(x, y, ' ', false)
		}
	}

	label := []rune(gateLabel(g))
	width := x1 - x0 - 1
	if len(label) > width {
		label = label[:width]
	}
	lx := x0 + 1 + (width-len(label))/2
	ly := (y0 + y1) / 2
	for i, r := range label {
		c.set(lx+i, ly, r, selected)
	}
}

func gateLabel(g *model.Gate) string {
	if g.Type == model.KindOrGate {
		return "≥" + strconv.Itoa(g.Threshold)
	}
	return "&"
}

func gateGlyph(g *model.Gate) rune {
	if g.Type == model.KindOrGate {
		return '≥'
	}
	return '&'
}

// Lines returns the grid as plain text.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	for y, row := range c.cells {
		out[y] = string(row)
	}
	return out
}

// Render returns the grid with selected cells highlighted.
func (c *Canvas) Render(accent lipgloss.Style) string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.accent[y][x] == c.accent[y][start] {
				continue
			}
			run := string(row[start:x])
			if c.accent[y][start] {
				run = accent.Render(run)
			}
			b.WriteString(run)
			start = x
		}
	}
	return b.String()
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
