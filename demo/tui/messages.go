package tui

// Messages for the tea program

// HealthCheckMsg reports whether the bot API answered.
type HealthCheckMsg struct {
	Err error
}

// MessageProcessedMsg carries the pipeline verdict for one sample message.
type MessageProcessedMsg struct {
	Index  int
	Result *ProcessResult
	Err    error
}
