package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// checkHealth creates a command to verify the bot API is reachable
func checkHealth(client *BotClient) tea.Cmd {
	return func() tea.Msg {
		err := client.Health()
		return HealthCheckMsg{Err: err}
	}
}

// sendMessage creates a command that runs one sample message through the bot
func sendMessage(client *BotClient, index int, userID, text string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.ProcessMessage(userID, text)
		return MessageProcessedMsg{
			Index:  index,
			Result: result,
			Err:    err,
		}
	}
}
