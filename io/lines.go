package io

import (
	"io"
)

// Lines is an in-memory source over a fixed list of lines.
type Lines struct {
	Text []string

	index int
}

var _ Source = (*Lines)(nil)

// NewLines creates a source over the given lines.
func NewLines(text ...string) *Lines {
	return &Lines{Text: text}
}

// Next returns the next line, or io.EOF.
func (ls *Lines) Next() (line string, err error) {
	if ls.index >= len(ls.Text) {
		err = io.EOF
		return
	}

	line = ls.Text[ls.index]
	ls.index++

	return
}
