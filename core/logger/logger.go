package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures session events.
type Logger struct {
	Record LogRecorder
	// Now is the time source, time.Now if unset.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	le := &LogEntry{}
	le.TimestampMicros = now().UnixNano() / int64(time.Microsecond)
	le.SessionId = sessionID
	event.setOn(le)

	return l.Record(le)
}

// NewSession creates a logger with a random session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
