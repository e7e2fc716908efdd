package tui

// UI Text Constants
const (
	// Footer
	TextFooterReady = "Press 'n' to send the next message | Press 'r' to restart | Press 'q' to quit"
	TextFooterDone  = "All messages sent | Press 'r' to restart | Press 'q' to quit"
)
