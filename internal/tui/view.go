package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	green  = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#7EE787"}
	red    = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF7B72"}
	muted  = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	blue   = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#79C0FF"}
	rowBg  = lipgloss.AdaptiveColor{Light: "#EAEEF2", Dark: "#30363D"}
	bodyFg = lipgloss.AdaptiveColor{Light: "#424A53", Dark: "#C9D1D9"}

	indented = lipgloss.NewStyle().PaddingLeft(1)

	titleStyle  = indented.Foreground(green).Bold(true)
	headerStyle = indented.Foreground(muted)
	helpStyle   = indented.Foreground(muted)

	cursorStyle      = lipgloss.NewStyle().Foreground(green).Bold(true)
	selectedRowStyle = lipgloss.NewStyle().Background(rowBg)
	dimStyle         = lipgloss.NewStyle().Foreground(muted)
	stateRunning     = lipgloss.NewStyle().Foreground(green)
	modeStyle        = lipgloss.NewStyle().Foreground(blue)
	promptStyle      = lipgloss.NewStyle().Foreground(green).Bold(true)

	confirmLabelStyle = indented.Foreground(red).Bold(true)
	confirmKeyStyle   = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(red).
				Bold(true).
				Padding(0, 1)

	ruleStyle    = lipgloss.NewStyle().Foreground(muted)
	previewStyle = lipgloss.NewStyle().Foreground(bodyFg)
)

// fit pads s with spaces to width terminal cells.
func fit(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// tildePath replaces $HOME with ~ and keeps the last limit runes of path.
func tildePath(path string, limit int) string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if rest, ok := strings.CutPrefix(path, home); ok {
			path = "~" + rest
		}
	}
	r := []rune(path)
	if len(r) <= limit {
		return path
	}
	return "…" + string(r[len(r)-limit+1:])
}

// FormatAge formats a duration using only the largest unit.
func FormatAge(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours())/24)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("vimdrive"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(fmt.Sprintf("  Error: %v\n\n", m.err))
	case len(m.servers) == 0:
		b.WriteString("  No vim servers. Run: vimdrive start\n\n")
	default:
		m.renderList(&b)
	}

	if m.preview != nil {
		m.renderPreview(&b)
	}

	b.WriteString(promptStyle.Render(" > "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	// Help bar / stop confirmation (same slot to avoid layout shift)
	if m.confirmStop != "" {
		b.WriteString(confirmLabelStyle.Render(fmt.Sprintf("Stop '%s'?", m.confirmStop)))
		b.WriteString("  ")
		b.WriteString(confirmKeyStyle.Render("Enter"))
		b.WriteString(helpStyle.Render("confirm"))
		b.WriteString("  ")
		b.WriteString(confirmKeyStyle.Render("Esc"))
		b.WriteString(helpStyle.Render("cancel"))
	} else if m.preview != nil {
		b.WriteString(helpStyle.Render("esc close  j/k navigate  ctrl+k stop"))
	} else {
		b.WriteString(helpStyle.Render("enter preview  j/k navigate  ctrl+k stop  q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderList(b *strings.Builder) {
	maxVis := m.maxVisibleServers()
	end := min(m.scrollOffset+maxVis, len(m.filtered))

	const wName, wState, wMode, wAge = 28, 8, 12, 8
	header := "    " + fit("NAME", wName) + "  " + fit("STATE", wState) + "  " + fit("MODE", wMode) + "  " + fit("AGE", wAge) + "  VIMRC"
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if m.scrollOffset > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("    ↑ %d more", m.scrollOffset)))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < end; i++ {
		s := m.filtered[i]
		name := s.Name
		if len(name) > wName {
			name = name[:wName-3] + "..."
		}
		row := " " + fit(name, wName) + "  " + fit(renderState(s), wState) + "  " + fit(renderMode(s), wMode) + "  " + fit(renderAge(s), wAge) + "  " + dimStyle.Render(tildePath(s.Vimrc, 40))

		if i == m.cursor {
			b.WriteString(cursorStyle.Render(" >"))
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString("  ")
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	if end < len(m.filtered) {
		b.WriteString(helpStyle.Render(fmt.Sprintf("    ↓ %d more", len(m.filtered)-end)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m Model) renderPreview(b *strings.Builder) {
	borderTitle := fmt.Sprintf(" ─── %s ", m.preview.Name)
	if remaining := m.width - lipgloss.Width(borderTitle) - 2; remaining > 0 {
		borderTitle += strings.Repeat("─", remaining)
	}
	b.WriteString(ruleStyle.Render(" " + borderTitle))
	b.WriteString("\n")

	if m.preview.Output == "" {
		b.WriteString(previewStyle.Render(" (empty buffer)"))
		b.WriteString("\n")
	} else {
		lines := strings.Split(m.preview.Output, "\n")
		maxPreview := max(3, m.height-10-m.maxVisibleServers())
		// Show the top of the buffer
		if len(lines) > maxPreview {
			lines = lines[:maxPreview]
		}
		for _, line := range lines {
			b.WriteString(previewStyle.Render(" " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString(ruleStyle.Render(" " + strings.Repeat("─", max(0, m.width-2))))
	b.WriteString("\n")
}

func renderState(s Server) string {
	if s.Live {
		return stateRunning.Render("running")
	}
	return dimStyle.Render("stopped")
}

func renderMode(s Server) string {
	if s.Mode == "" {
		return dimStyle.Render("-")
	}
	return modeStyle.Render(s.Mode.String())
}

func renderAge(s Server) string {
	if s.StartedAt.IsZero() {
		return dimStyle.Render("-")
	}
	return dimStyle.Render(FormatAge(time.Since(s.StartedAt)))
}
