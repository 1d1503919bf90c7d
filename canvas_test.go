package main

import (
	"math"
	"strings"
	"testing"

	"logicdraw/editor"
	"logicdraw/model"
)

func TestCanvasGate(t *testing.T) {
	g := model.New(model.DefaultOptions())
	g.InsertGate(model.KindAndGate, 0, 0)

	c := NewCanvas(20, 10)
	c.Draw(g, editor.Identity())
	lines := c.Lines()

	want := map[[2]int]rune{
		{0, 0}: '┌',
		{6, 0}: '┐',
		{0, 3}: '└',
		{6, 3}: '┘',
		{3, 1}: '&',
		{3, 0}: '─',
		{0, 2}: '│',
	}
	for pos, r := range want {
		if got := []rune(lines[pos[1]])[pos[0]]; got != r {
			t.Errorf("cell %v = %q, want %q", pos, got, r)
		}
	}
	// owned pins stay hidden until the gate shows them
	if strings.ContainsRune(strings.Join(lines, ""), 'o') {
		t.Errorf("owned pins drawn:\n%s", strings.Join(lines, "\n"))
	}
}

func TestCanvasWire(t *testing.T) {
	g := model.New(model.DefaultOptions())
	a := g.InsertPin(2.5, 25)
	b := g.InsertPin(47.5, 25)
	g.InsertWire(a, b)

	c := NewCanvas(20, 5)
	c.Draw(g, editor.Identity())
	row := []rune(c.Lines()[2])

	if row[0] != 'o' || row[9] != 'o' {
		t.Errorf("pin ends = %q %q, want o", row[0], row[9])
	}
	for x := 1; x < 9; x++ {
		if row[x] != '─' {
			t.Errorf("cell %d = %q, want ─", x, row[x])
		}
	}
	if row[10] != ' ' {
		t.Errorf("line overran: %q", string(row))
	}
}

func TestCanvasFollowsView(t *testing.T) {
	g := model.New(model.DefaultOptions())
	g.InsertPin(2.5, 5)

	c := NewCanvas(10, 5)
	c.Draw(g, editor.Identity().Translated(10, 20))
	if r := []rune(c.Lines()[2])[2]; r != 'o' {
		t.Errorf("panned pin not at (2,2):\n%s", strings.Join(c.Lines(), "\n"))
	}
}

func TestCanvasSkipsOffscreenAndNonFinite(t *testing.T) {
	g := model.New(model.DefaultOptions())
	a := g.InsertPin(-1e12, 5)
	b := g.InsertPin(1e12, 5)
	g.InsertWire(a, b)
	g.InsertPin(1, 1).X = math.NaN()

	c := NewCanvas(10, 3)
	c.Draw(g, editor.Identity())
	if got := c.Lines()[0]; got != strings.Repeat("─", 10) {
		t.Errorf("clipped wire row = %q", got)
	}
}

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"PIN;0;0;0", "PIN;0;0;0\n"},
		{"\ufeffPIN;0;0;0\r\nPIN;1;1;1\r\n", "PIN;0;0;0\nPIN;1;1;1\n"},
		{"a\rb", "a\nb\n"},
	}
	for _, tt := range tests {
		if got := cleanClipboardText(tt.in); got != tt.want {
			t.Errorf("cleanClipboardText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithExt(t *testing.T) {
	if got := withExt("adder", diagramExt); got != "adder.ldr" {
		t.Errorf("got %q", got)
	}
	if got := withExt("ADDER.LDR", diagramExt); got != "ADDER.LDR" {
		t.Errorf("got %q", got)
	}
}
