package logger

import (
	"fmt"
	"sort"
	"strings"
)

// StrCounter counts occurrences of strings.
type StrCounter map[string]int

func (s *StrCounter) Increment(key string) {
	if *s == nil {
		*s = make(StrCounter)
	}
	(*s)[key]++
}

// Top returns the keys ordered by count, ties are ordered by key.
func (s StrCounter) Top() []string {
	var keys []string
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if s[keys[i]] != s[keys[j]] {
			return s[keys[i]] > s[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries int        `json:"unknown_log_entries,omitempty"`

	CommandNames       StrCounter `json:"command_names"`
	UnknownCommands    StrCounter `json:"unknown_commands"`
	InvalidInvocations StrCounter `json:"invalid_invocations"`
	Directories        StrCounter `json:"directories"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionId != "" {
		r.Sessions.Increment(le.SessionId)
	}

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		if len(event.Command) > 0 {
			r.CommandNames.Increment(event.Command[0])
		}
	case *UnknownCommand:
		if len(event.Command) > 0 {
			r.UnknownCommands.Increment(event.Command[0])
		}
	case *InvalidInvocation:
		name := ""
		if len(event.Command) > 0 {
			name = event.Command[0]
		}
		r.InvalidInvocations.Increment(fmt.Sprintf("%s: %s", name, event.Error))
	case *DirectoryChanged:
		r.Directories.Increment(event.To)
	case *SessionStart, *SessionEnd:
		// Ignore
	default:
		r.InvalidEntries++
	}
}

// Summary renders the report as plain text.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "entries: %d\n", r.LogEntries)
	fmt.Fprintf(&sb, "sessions: %d\n", len(r.Sessions))

	for _, section := range []struct {
		title   string
		counter StrCounter
	}{
		{"commands", r.CommandNames},
		{"unknown commands", r.UnknownCommands},
		{"invalid invocations", r.InvalidInvocations},
		{"directories", r.Directories},
	} {
		if len(section.counter) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", section.title)
		for _, key := range section.counter.Top() {
			fmt.Fprintf(&sb, "% 6d  %s\n", section.counter[key], key)
		}
	}

	return sb.String()
}
