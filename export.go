package main

import (
	"fmt"
	"os"
	"strings"

	"logicdraw/codec"
	"logicdraw/config"
	"logicdraw/editor"
	"logicdraw/model"
	"logicdraw/render"
)

func graphOptions(cfg *config.Config) model.Options {
	return model.Options{PinRadius: cfg.PinRadius, HitOffset: cfg.HitOffset}
}

func editorOptions(cfg *config.Config) editor.Options {
	opts := editor.DefaultOptions()
	opts.Graph = graphOptions(cfg)
	opts.SnapToLine = cfg.SnapToLine
	opts.MinZoom = cfg.MinZoom
	opts.MaxZoom = cfg.MaxZoom
	return opts
}

// readDiagram decodes the diagram file at path.
func readDiagram(path string, opts model.Options) (*model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := codec.Decode(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func (m *tui) saveDiagram(path string) error {
	var text string
	if err := m.exec(func(ed *editor.Editor) error {
		text = ed.Text()
		return nil
	}); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func (m *tui) openDiagram(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.exec(func(ed *editor.Editor) error {
		return ed.Load(string(data))
	})
}

// exportPNG renders on the editor goroutine so the graph cannot change
// underneath the renderer.
func (m *tui) exportPNG(path string) error {
	return m.exec(func(ed *editor.Editor) error {
		return render.SavePNG(path, ed.Graph(), render.DefaultOptions())
	})
}

// exportVisualTXT writes the diagram exactly as the terminal shows it.
func (m *tui) exportVisualTXT(path string) error {
	if m.frame.canvas == nil {
		return fmt.Errorf("nothing drawn yet")
	}
	var b strings.Builder
	for _, line := range m.frame.canvas.Lines() {
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
