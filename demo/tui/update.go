package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case HealthCheckMsg:
		return m.handleHealthCheck(msg)
	case MessageProcessedMsg:
		return m.handleMessageProcessed(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "n", "N", "enter":
		if m.State != StateReady || m.Next >= len(m.Script) {
			return m, nil
		}
		next := m.Script[m.Next]
		m.State = StateSending
		return m, sendMessage(m.Client, m.Next, next.UserID, next.Text)
	case "r", "R":
		if m.State == StateSending {
			return m, nil
		}
		m.Next = 0
		m.Transcript = nil
		m.Err = nil
		m.State = StateConnecting
		m.Connected = false
		return m, checkHealth(m.Client)
	}
	return m, nil
}

// handleHealthCheck processes the startup health probe
func (m Model) handleHealthCheck(msg HealthCheckMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.State = StateReady
	return m, nil
}

// handleMessageProcessed records the bot's verdict for the message just sent
func (m Model) handleMessageProcessed(msg MessageProcessedMsg) (tea.Model, tea.Cmd) {
	entry := Transcript{
		Message: m.Script[msg.Index],
		Result:  msg.Result,
		Err:     msg.Err,
	}
	m.Transcript = append(m.Transcript, entry)
	m.Next = msg.Index + 1

	if m.Next >= len(m.Script) {
		m.State = StateDone
	} else {
		m.State = StateReady
	}
	return m, nil
}
