package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 1500 * time.Millisecond

type tickMsg time.Time

type serversMsg []Server

type previewOutputMsg struct {
	Name   string
	Output string
}

type stoppedMsg struct {
	Name string
	Err  error
}

type previewState struct {
	Name   string
	Output string
}

type Model struct {
	src          Source
	servers      []Server
	filtered     []Server
	cursor       int
	scrollOffset int
	input        textinput.Model
	preview      *previewState
	confirmStop  string
	width        int
	height       int
	quitting     bool
	err          error
}

func NewModel(src Source) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter servers..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 60

	return Model{
		src:   src,
		input: ti,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh, tickCmd())
}

func (m Model) refresh() tea.Msg {
	servers, err := m.src.List()
	if err != nil {
		return err
	}
	return serversMsg(servers)
}

func (m Model) previewCmd(name string) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		out, err := src.Driver(name).Contents()
		if err != nil {
			return previewOutputMsg{Name: name, Output: "Error: " + err.Error()}
		}
		return previewOutputMsg{Name: name, Output: out}
	}
}

func (m Model) stopCmd(name string) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		err := src.Driver(name).Stop()
		if err == nil && src.Store != nil {
			err = src.Store.RecordStop(name)
		}
		return stoppedMsg{Name: name, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case serversMsg:
		m.servers = msg
		m.err = nil
		m.applyFilter()
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(), m.refresh}
		if m.preview != nil {
			cmds = append(cmds, m.previewCmd(m.preview.Name))
		}
		return m, tea.Batch(cmds...)

	case previewOutputMsg:
		if m.preview != nil && m.preview.Name == msg.Name {
			m.preview.Output = msg.Output
		}
		return m, nil

	case stoppedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("stop %s: %w", msg.Name, msg.Err)
		}
		return m, m.refresh

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if key.Matches(msg, keys.CtrlC) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, keys.Escape) {
		switch {
		case m.confirmStop != "":
			m.confirmStop = ""
		case m.preview != nil:
			m.preview = nil
		default:
			m.input.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}

	// If stop confirmation is pending, only Enter proceeds
	if m.confirmStop != "" {
		name := m.confirmStop
		m.confirmStop = ""
		if key.Matches(msg, keys.Enter) {
			m.preview = nil
			return m, m.stopCmd(name)
		}
		return m, nil
	}

	if key.Matches(msg, keys.Stop) {
		if sel := m.selectedServer(); sel != nil && sel.Live && sel.Registered {
			m.confirmStop = sel.Name
		}
		return m, nil
	}

	if key.Matches(msg, keys.Quit) && m.input.Value() == "" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.input.Value() == "" {
		if key.Matches(msg, keys.Up) {
			return m.moveCursor(-1)
		}
		if key.Matches(msg, keys.Down) {
			return m.moveCursor(1)
		}
	}

	if key.Matches(msg, keys.Enter) {
		sel := m.selectedServer()
		if sel == nil || !sel.Live || !sel.Registered {
			return m, nil
		}
		m.preview = &previewState{Name: sel.Name}
		return m, m.previewCmd(sel.Name)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.filtered) {
		return m, nil
	}
	m.cursor = next
	m.ensureCursorVisible()

	if m.preview == nil {
		return m, nil
	}
	sel := m.selectedServer()
	if sel == nil || !sel.Live || !sel.Registered {
		m.preview = nil
		return m, nil
	}
	m.preview = &previewState{Name: sel.Name}
	return m, m.previewCmd(sel.Name)
}

func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.servers
	} else {
		m.filtered = nil
		for _, s := range m.servers {
			if strings.Contains(strings.ToLower(s.Name), query) {
				m.filtered = append(m.filtered, s)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.ensureCursorVisible()
}

func (m Model) maxVisibleServers() int {
	if m.preview == nil {
		return len(m.filtered)
	}
	maxVis := m.height / 10
	if maxVis < 5 {
		maxVis = 5
	}
	if maxVis > len(m.filtered) {
		maxVis = len(m.filtered)
	}
	return maxVis
}

func (m *Model) ensureCursorVisible() {
	maxVis := m.maxVisibleServers()
	if maxVis <= 0 {
		m.scrollOffset = 0
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+maxVis {
		m.scrollOffset = m.cursor - maxVis + 1
	}
	maxOffset := max(0, len(m.filtered)-maxVis)
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}

func (m Model) selectedServer() *Server {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	s := m.filtered[m.cursor]
	return &s
}
