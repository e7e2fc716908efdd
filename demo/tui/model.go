package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateConnecting State = "connecting"
	StateReady      State = "ready"
	StateSending    State = "sending"
	StateDone       State = "done"
	StateError      State = "error"
)

// SampleMessage is one canned group-chat message the demo replays.
type SampleMessage struct {
	UserID string
	Text   string
}

// DefaultScript is the chat transcript the demo steps through. It mixes
// clear requests, casual chatter, and a repeat of an earlier title so the
// duplicate path shows up on screen.
var DefaultScript = []SampleMessage{
	{UserID: "dana", Text: "בוקר טוב לכולם"},
	{UserID: "yossi", Text: "אפשר בבקשה את הסרט אווטאר 2022?"},
	{UserID: "dana", Text: "תודה רבה!"},
	{UserID: "amit", Text: "יש את הסדרה The Last of Us עונה 2?"},
	{UserID: "noa", Text: "מישהו ראה את המשחק אתמול?"},
	{UserID: "yossi", Text: "מחפש את הסרט avatar"},
	{UserID: "amit", Text: "צריך בדחיפות photoshop 2024 למחשב"},
}

// Transcript pairs a sent message with the verdict the bot returned.
type Transcript struct {
	Message SampleMessage
	Result  *ProcessResult
	Err     error
}

// Model represents the TUI client state (thin client)
type Model struct {
	Client *BotClient

	Script     []SampleMessage
	Next       int
	Transcript []Transcript

	State     State
	Connected bool
	Err       error
}

// NewModel creates a new TUI model
func NewModel(botURL string) Model {
	return Model{
		Client: NewBotClient(botURL),
		Script: DefaultScript,
		State:  StateConnecting,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return checkHealth(m.Client)
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected {
		if m.State == StateError {
			return ErrorStyle.Render(fmt.Sprintf("❌ Cannot reach bot: %v", m.Err))
		}
		return InfoStyle.Render("Connecting to bot...")
	}

	switch m.State {
	case StateReady:
		if len(m.Transcript) == 0 {
			return HighlightStyle.Render("👋 Connected!") + "\n\n" +
				InfoStyle.Render("Press 'n' to replay the first chat message")
		}
		return StatusStyle.Render(fmt.Sprintf("✅ %d of %d messages sent", m.Next, len(m.Script)))
	case StateSending:
		return StatusStyle.Render("📤 Sending message to bot...")
	case StateDone:
		return HighlightStyle.Render("✅ Script complete")
	case StateError:
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", m.Err))
	default:
		return ""
	}
}

// formatVerdict renders one transcript entry's verdict line.
func formatVerdict(t Transcript) string {
	if t.Err != nil {
		return ErrorStyle.Render(fmt.Sprintf("error: %v", t.Err))
	}
	r := t.Result

	switch r.Outcome {
	case "created":
		line := fmt.Sprintf("📝 request #%d created: %q (%s)", r.Request.ID, r.Request.Title, r.Request.Category)
		return StatusStyle.Render(line)
	case "duplicate":
		var ids []string
		for _, match := range r.Matches {
			ids = append(ids, fmt.Sprintf("#%d (%.2f)", match.ID, match.Score))
		}
		return WarningStyle.Render("🔁 duplicate of " + strings.Join(ids, ", "))
	default:
		if r.Analysis != nil && r.Analysis.RawScore != 0 {
			return InfoStyle.Render(fmt.Sprintf("ignored (score %d)", r.Analysis.RawScore))
		}
		return InfoStyle.Render("ignored")
	}
}
