package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"logicdraw/config"
	"logicdraw/editor"
	"logicdraw/model"
)

func main() {
	Execute()
}

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	statusStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// runEditor opens the terminal editor on path, which may not exist yet.
func runEditor(cfg *config.Config, path string) error {
	ed := editor.New(editorOptions(cfg))
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := ed.Load(string(data)); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// created on first save
		default:
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := newFrameSource(80, 23)
	svc := editor.NewService(ed, frames.Paint)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	p := tea.NewProgram(
		initialModel(ctx, svc, frames, cfg, path),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

func initialModel(ctx context.Context, svc *editor.Service, frames *frameSource, cfg *config.Config, path string) tui {
	return tui{
		ctx:          ctx,
		svc:          svc,
		frames:       frames,
		config:       cfg,
		path:         path,
		mode:         ModeNormal,
		selectedFile: -1,
	}
}

func (m tui) Init() tea.Cmd {
	return m.frames.wait(m.ctx)
}

func (m tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.frame = frame(msg)
		return m, m.frames.wait(m.ctx)

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.updateHelp(msg)
		}
		switch m.mode {
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m tui) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case "?":
		m.help = true
		m.helpScroll = 0

	case "a":
		m.insertGate(model.KindAndGate)
	case "r":
		m.insertGate(model.KindOrGate)
	case "p":
		m.report(m.exec(func(ed *editor.Editor) error {
			ed.InsertPin()
			return nil
		}))
	case "d", "delete", "backspace":
		var deleted bool
		err := m.exec(func(ed *editor.Editor) (err error) {
			deleted, err = ed.DeleteSelected()
			return err
		})
		if err == nil && !deleted {
			m.errorMessage = "Nothing selected"
		}
		m.report(err)
	case "+", "=":
		m.adjustThreshold(1)
	case "-", "_":
		m.adjustThreshold(-1)
	case "g":
		var on bool
		err := m.exec(func(ed *editor.Editor) error {
			on = ed.ToggleSnap()
			return nil
		})
		m.report(err)
		if err == nil {
			m.successMessage = "Snap to line " + onOff(on)
		}

	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()

	case "z":
		m.zoomBy(zoomFactor)
	case "Z":
		m.zoomBy(1 / zoomFactor)
	case "0":
		m.report(m.exec(func(ed *editor.Editor) error {
			ed.ResetZoom()
			return nil
		}))
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		m.handlePan(key, m.getMoveSpeed(key))

	case "s":
		m.startFileInput(FileOpSave)
	case "S":
		m.startFileInput(FileOpSavePNG)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT)
	case "o":
		m.startFileInput(FileOpOpen)
	case "n":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmNewChart

	case "c":
		m.copyDiagram()
	case "v":
		m.pasteDiagram()
	}
	return m, nil
}

func (m *tui) insertGate(kind model.Kind) {
	m.report(m.exec(func(ed *editor.Editor) error {
		_, err := ed.InsertGate(kind)
		return err
	}))
}

func (m *tui) adjustThreshold(delta int) {
	var value int
	err := m.exec(func(ed *editor.Editor) (err error) {
		value, err = ed.AdjustThreshold(delta)
		return err
	})
	if errors.Is(err, model.ErrNotFound) {
		m.errorMessage = "Select an OR gate first"
		return
	}
	m.report(err)
	if err == nil {
		m.successMessage = fmt.Sprintf("Threshold %d", value)
	}
}

// report shows err on the status line.
func (m *tui) report(err error) {
	if err != nil {
		m.errorMessage = err.Error()
		editor.Logger().Debug("command failed", "err", err)
	}
}

func (m *tui) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.fileList = m.fileList[:0]
	m.selectedFile = -1
	switch op {
	case FileOpOpen:
		m.scanDiagramFiles()
	case FileOpSave:
		if m.path != "" {
			m.filename = strings.TrimSuffix(m.path, diagramExt)
		}
	}
}

func (m tui) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			step := 1
			if msg.Type == tea.KeyUp {
				step = len(m.fileList) - 1
			}
			m.selectedFile = (max(m.selectedFile, 0) + step) % len(m.fileList)
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFile], diagramExt)
		}
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.filename += " "
		return m, nil
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return m, nil
	}
	switch m.fileOp {
	case FileOpSavePNG:
		name = withExt(name, ".png")
	case FileOpSaveVisualTXT:
		name = withExt(name, ".txt")
	default:
		name = withExt(name, diagramExt)
	}
	path, err := m.config.GetSavePath(name)
	if err != nil {
		m.report(err)
		return m, nil
	}

	if m.fileOp != FileOpOpen && path != m.path {
		if _, err := os.Stat(path); err == nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.filename = path
			return m, nil
		}
	}
	m.runFileOp(path)
	return m, nil
}

func (m *tui) runFileOp(path string) {
	var err error
	var done string
	switch m.fileOp {
	case FileOpSave:
		if err = m.saveDiagram(path); err == nil {
			m.path = path
			done = "Saved to " + path
		}
	case FileOpSavePNG:
		err = m.exportPNG(path)
		done = "Exported PNG to " + path
	case FileOpSaveVisualTXT:
		err = m.exportVisualTXT(path)
		done = "Exported text to " + path
	case FileOpOpen:
		if err = m.openDiagram(path); err == nil {
			m.path = path
			done = "Opened " + path
		}
	}
	if err != nil {
		// stay in file input so the name can be corrected
		m.errorMessage = err.Error()
		return
	}
	editor.Logger().Info("file operation", "path", path, "result", done)
	m.mode = ModeNormal
	m.filename = ""
	m.errorMessage = ""
	m.successMessage = done
}

func (m tui) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
	case "ctrl+c":
		return m, tea.Quit
	default:
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.filename = ""
		} else {
			m.mode = ModeNormal
		}
		return m, nil
	}

	switch m.confirmAction {
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmNewChart:
		m.mode = ModeNormal
		m.report(m.exec(func(ed *editor.Editor) error {
			ed.Clear()
			return nil
		}))
		m.path = ""
	case ConfirmOverwriteFile:
		m.mode = ModeFileInput
		m.runFileOp(m.filename)
	}
	return m, nil
}

func (m tui) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-(m.height-1), 0)
		m.helpScroll = min(m.helpScroll+1, maxScroll)
	case "k", "up":
		m.helpScroll = max(m.helpScroll-1, 0)
	case "ctrl+c":
		return m, tea.Quit
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m tui) View() string {
	if m.help {
		return m.helpView()
	}
	var b strings.Builder
	if m.frame.canvas != nil {
		b.WriteString(m.frame.canvas.Render(accentStyle))
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m tui) statusLine() string {
	var line string
	switch m.mode {
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpSave:
			op = "Save"
		case FileOpSavePNG:
			op = "Export PNG"
		case FileOpSaveVisualTXT:
			op = "Export text"
		case FileOpOpen:
			op = "Open"
		}
		line = fmt.Sprintf("Mode: FILE | %s filename: %s", op, m.filename)
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			line += fmt.Sprintf(" | %d/%d ↑/↓", m.selectedFile+1, len(m.fileList))
		}
		line += " | Enter=confirm, Esc=cancel"
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit logicdraw? (y/n)"
		case ConfirmNewChart:
			message = "Clear the diagram? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		line = "Mode: CONFIRM | " + message
	default:
		st := m.frame.status
		line = fmt.Sprintf("Mode: %s | %d gates %d pins %d wires | zoom %.2f | snap %s | undo %d redo %d",
			m.modeString(), st.gates, st.pins, st.wires, st.zoom, onOff(st.snap), st.undo, st.redo)
		if st.selected != "" {
			line += " | " + st.selected
		}
		if m.path != "" {
			line += " | " + m.path
		}
		if m.successMessage != "" {
			line += " | " + m.successMessage
		} else if m.errorMessage == "" {
			line += " | ? for help | q to quit"
		}
	}

	style := statusStyle
	if m.width > 0 {
		style = style.MaxWidth(m.width)
	}
	if m.errorMessage != "" {
		return style.Render(line+" | ") + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return style.Render(line)
}

func (m tui) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var helpLines = []string{
	"logicdraw help",
	"==============",
	"",
	"Mouse:",
	"------",
	"  click pin        Select it as a wire start, click another pin to connect",
	"  click wire       Select it; click again to deselect",
	"  click wire       With a pin selected, split the wire and connect to the new pin",
	"  click empty      With a pin selected, extend a new wire to a new pin",
	"  drag gate/pin    Move it; dragging a wire end off a gate detaches it",
	"  drop pin on pin  Merge the dragged pin into the target",
	"  drag empty       Pan the view",
	"  wheel            Zoom about the pointer",
	"",
	"Elements:",
	"---------",
	"  a                Insert AND gate at the centre of the view",
	"  r                Insert OR gate at the centre of the view",
	"  p                Insert pin at the centre of the view",
	"  d/Delete         Delete the selected wire or element",
	"  +/-              Raise or lower the selected OR gate's threshold",
	"  g                Toggle snapping split pins onto the wire",
	"",
	"View:",
	"-----",
	"  h/←/j/↓/k/↑/l/→  Pan",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  z/Z              Zoom in/out",
	"  0                Reset zoom",
	"",
	"Files:",
	"------",
	"  s                Save diagram (" + diagramExt + ")",
	"  S                Export as PNG image",
	"  T                Export the view as plain text",
	"  o                Open a diagram",
	"  n                Clear the diagram",
	"  c                Copy diagram text to the clipboard",
	"  v                Paste diagram text from the clipboard",
	"",
	"General:",
	"--------",
	"  u                Undo",
	"  U/Ctrl+R         Redo",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m tui) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[start:end], "\n")
	result += "\n" + statusStyle.Render(fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines)))
	return result
}
