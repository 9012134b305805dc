// Package curdir holds the shell's current directory.
package curdir

import (
	"sync"

	"github.com/Grusburk/intecmd/core/pathconv"
)

// CurrentDirectory is an absolute, normalized path that is always below a
// filesystem root.
//
// Every change goes through Set, which validates the candidate before it
// replaces the stored value. A rejected candidate leaves the previous value in
// place.
type CurrentDirectory struct {
	mu   sync.RWMutex
	conv *pathconv.Convention
	path string
}

// New creates a current directory starting at initial.
func New(conv *pathconv.Convention, initial string) (*CurrentDirectory, error) {
	normalized, err := conv.Validate(initial)
	if err != nil {
		return nil, err
	}

	return &CurrentDirectory{conv: conv, path: normalized}, nil
}

// Set replaces the current directory with path if it's valid.
func (c *CurrentDirectory) Set(path string) error {
	normalized, err := c.conv.Validate(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = normalized
	return nil
}

// Update computes a new directory from the current one and stores it.
// The read and the write happen under one lock so concurrent updates can't
// interleave.
func (c *CurrentDirectory) Update(next func(current string) (string, error)) (from, to string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidate, err := next(c.path)
	if err != nil {
		return c.path, c.path, err
	}

	normalized, err := c.conv.Validate(candidate)
	if err != nil {
		return c.path, c.path, err
	}

	from, c.path = c.path, normalized
	return from, normalized, nil
}

// Convention returns the path rules the directory is validated against.
func (c *CurrentDirectory) Convention() *pathconv.Convention {
	return c.conv
}

// String returns the current path.
func (c *CurrentDirectory) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}
