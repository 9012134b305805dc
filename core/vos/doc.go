// Package vos provides the virtual operating system commands run against.
//
// A Session owns the state shared by a shell: the current directory, the
// directory reader and the event log. Each command gets its own ProcOS with
// private arguments, environment and standard streams.
package vos
