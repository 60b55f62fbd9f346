package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// sceneActivity is written by the store subscription and read by View.
type sceneActivity struct {
	revision int
	last     ChangeKind
}

type model struct {
	editor     *Editor
	theme      *ThemeController
	cfg        *Config
	log        *slog.Logger
	activity   *sceneActivity
	systemDark bool

	width          int
	height         int
	selected       int
	addType        BlockType
	help           bool
	flushScheduled bool
	successMessage string
	errorMessage   string
	now            func() time.Time
}

type flushMsg time.Time

func initialModel(editor *Editor, theme *ThemeController, cfg *Config, log *slog.Logger, systemDark bool) model {
	activity := &sceneActivity{}
	editor.Store().Subscribe(func(c Change) {
		activity.revision++
		activity.last = c.Kind
	})
	return model{
		editor:     editor,
		theme:      theme,
		cfg:        cfg,
		log:        log,
		activity:   activity,
		systemDark: systemDark,
		addType:    ConditionActionHandler,
		now:        time.Now,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) canvasHeight() int {
	return max(m.height-1, 1)
}

// screenPoint maps a terminal cell to the screen pixel at its centre.
func screenPoint(x, y int) (float64, float64) {
	return float64(x)*cellWidth + cellWidth/2, float64(y)*cellHeight + cellHeight/2
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.BlurMsg:
		m.editor.PointerCancel()
		m.flushScheduled = false
		return m, nil

	case flushMsg:
		m.flushScheduled = false
		m.editor.Flush(time.Time(msg))
		cmd := m.scheduleFlush()
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px, py := screenPoint(msg.X, msg.Y)
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.editor.Wheel(WheelEvent{X: px, Y: py, Ticks: 1})
		case tea.MouseButtonWheelDown:
			m.editor.Wheel(WheelEvent{X: px, Y: py, Ticks: -1})
		case tea.MouseButtonLeft:
			if msg.Y >= m.canvasHeight() {
				return m, nil
			}
			ev := m.editor.PointerAt(px, py, now)
			if ev.Target != TargetCanvas {
				m.selected = ev.BlockID
			}
			m.editor.PointerDown(ev)
		}
	case tea.MouseActionMotion:
		if m.editor.PointerMove(m.editor.PointerAt(px, py, now)) {
			cmd := m.scheduleFlush()
			return m, cmd
		}
	case tea.MouseActionRelease:
		// X10 terminals report releases without a button.
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			m.editor.PointerUp(m.editor.PointerAt(px, py, now))
		}
	}
	return m, nil
}

func (m *model) scheduleFlush() tea.Cmd {
	if m.flushScheduled || !m.editor.HasPending() {
		return nil
	}
	m.flushScheduled = true
	wait := m.editor.PendingWait(m.now())
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return flushMsg(t)
	})
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.successMessage = ""
	m.errorMessage = ""

	if m.help {
		m.help = false
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.help = true
	case "esc":
		m.editor.PointerCancel()
	case "a":
		m.addBlock(m.addType)
	case "n":
		m.addType = (m.addType + 1) % numBlockTypes
	case "N":
		m.addType = (m.addType + numBlockTypes - 1) % numBlockTypes
	case "c":
		if _, ok := m.editor.Store().SetAppearanceFor(m.selected, m.addType); !ok {
			m.errorMessage = "no block selected"
		}
	case "x", "delete", "backspace":
		if m.editor.Store().RemoveBlock(m.selected) {
			m.selected = 0
		}
	case "d":
		parent := m.editor.Store().Parent(m.selected)
		if parent == noParent || !m.editor.Store().Disconnect(LineKey{From: parent, To: m.selected}) {
			m.errorMessage = "selected block has no parent"
		}
	case "tab", "u", "enter":
		m.handleSelection(key)
	case "t":
		if err := m.theme.Toggle(); err != nil {
			m.errorMessage = err.Error()
		}
	case "y":
		m.copySelected()
	case "p":
		m.pasteBlock()
	case "e":
		m.exportPNG()
	case "0":
		m.editor.ResetView()
	case "+", "=":
		m.zoomCentre(1)
	case "-":
		m.zoomCentre(-1)
	default:
		m.handleNavigation(key, m.getMoveSpeed(key))
	}
	return m, nil
}

func (m *model) centreScene() (float64, float64) {
	px, py := screenPoint(m.width/2, m.canvasHeight()/2)
	return m.editor.View().ScreenToScene(px, py)
}

func (m *model) addBlock(t BlockType) {
	layout := m.editor.Layout()
	sx, sy := m.centreScene()
	b := m.editor.Store().AddBlock(t, sx-layout.BlockWidth/2, sy-layout.BlockHeight/2)
	m.selected = b.ID
}

func (m *model) zoomCentre(ticks float64) {
	px, py := screenPoint(m.width/2, m.canvasHeight()/2)
	m.editor.Wheel(WheelEvent{X: px, Y: py, Ticks: ticks})
}

func (m *model) exportPNG() {
	path := m.cfg.GetSavePath("blockflow.png")
	if err := ExportPNG(path, m.editor.Store().Snapshot(), m.editor.Layout(), m.dark()); err != nil {
		m.log.Warn("png export failed", "path", path, "err", err)
		m.errorMessage = err.Error()
		return
	}
	m.log.Info("png exported", "path", path)
	m.successMessage = "exported " + path
}

func (m model) dark() bool {
	return m.theme.Dark(m.systemDark)
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := max(m.width, 1)
	canvas := NewCanvas(width, m.canvasHeight(), m.dark())
	var preview *Line
	if l, ok := m.editor.Preview(); ok {
		preview = &l
	}
	rows := canvas.Render(m.editor.Store().Snapshot(), m.editor.View(), m.editor.Layout(), preview, m.selected)

	var result strings.Builder
	for _, row := range rows {
		result.WriteString(row)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine(width))
	return result.String()
}

func (m model) statusLine(width int) string {
	view := m.editor.View()
	parts := []string{
		m.editor.State().String(),
		fmt.Sprintf("%d%%", int(view.Scale*100+0.5)),
		fmt.Sprintf("%d blocks", m.editor.Store().Len()),
		"add: " + m.addType.String(),
		fmt.Sprintf("rev %d %s", m.activity.revision, m.activity.last),
	}
	if b, ok := m.editor.Store().Block(m.selected); ok {
		parts = append(parts, fmt.Sprintf("sel #%d %s", b.ID, b.Type))
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#4A5468"))
	if m.dark() {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("#9AA4B8"))
	}
	switch {
	case m.errorMessage != "":
		parts = append(parts, m.errorMessage)
		style = style.Foreground(lipgloss.Color("#E25A50"))
	case m.successMessage != "":
		parts = append(parts, m.successMessage)
		style = style.Foreground(lipgloss.Color("#21B657"))
	}

	line := strings.Join(parts, " | ")
	if r := []rune(line); len(r) > width {
		line = string(r[:width])
	}
	return style.Render(line)
}

func (m model) helpView() string {
	help := []string{
		"blockflow",
		"",
		"mouse   drag block to move, drag its bottom handle onto another block to connect,",
		"        drag empty canvas to pan, wheel to zoom",
		"a       add block        n/N  next/previous block type",
		"c       retype selected  x    remove selected",
		"d       disconnect selected from its parent",
		"tab     next sibling     enter first child    u parent",
		"hjkl    pan (shift: faster)   +/- zoom   0 reset view",
		"y/p     copy label / paste block type",
		"e       export PNG       t toggle theme",
		"esc     cancel drag      q quit",
		"",
		"press any key",
	}
	return strings.Join(help, "\n")
}
