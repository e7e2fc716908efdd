package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🤖 ContentBot Chat Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Transcript
	if len(m.Transcript) > 0 {
		var chat strings.Builder
		for i, entry := range m.Transcript {
			chat.WriteString(fmt.Sprintf("%s: %s\n", HighlightStyle.Render(entry.Message.UserID), entry.Message.Text))
			chat.WriteString("   " + formatVerdict(entry))
			if i < len(m.Transcript)-1 {
				chat.WriteString("\n\n")
			}
		}
		b.WriteString(BoxStyle.Render(chat.String()))
		b.WriteString("\n\n")
	}

	// Upcoming message preview
	if m.State == StateReady && m.Next < len(m.Script) {
		next := m.Script[m.Next]
		preview := fmt.Sprintf("Next: %s: %s", next.UserID, next.Text)
		b.WriteString(InfoStyle.Render(preview))
		b.WriteString("\n\n")
	}

	// Help text
	switch m.State {
	case StateDone:
		b.WriteString(InfoStyle.Render(TextFooterDone))
	case StateError:
		b.WriteString(InfoStyle.Render("Press 'r' to retry | Press 'q' or Ctrl+C to quit"))
	default:
		b.WriteString(InfoStyle.Render(TextFooterReady))
	}

	return b.String()
}
