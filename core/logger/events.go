package logger

// LogEntry is a single line of the event log. Exactly one of the event fields
// is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionId       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	DirectoryChanged  *DirectoryChanged  `json:"directory_changed,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.DirectoryChanged != nil:
		return le.DirectoryChanged
	default:
		return nil
	}
}

type SessionStart struct {
	User       string `json:"user"`
	Home       string `json:"home"`
	Directory  string `json:"directory"`
	Convention string `json:"convention"`
	IsPty      bool   `json:"is_pty"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

type SessionEnd struct {
	ExitCode int `json:"exit_code"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

type RunCommand struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// InvalidInvocation is recorded when a command rejects its input.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) setOn(le *LogEntry) { le.InvalidInvocation = e }

type DirectoryChanged struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e *DirectoryChanged) setOn(le *LogEntry) { le.DirectoryChanged = e }
