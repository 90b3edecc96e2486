// Package io provides the line sources that feed program text to the
// emulator. A source yields raw lines one at a time until io.EOF; the
// emulator never learns whether they came from a terminal, a file or memory.
package io

import (
	"errors"
	"io"
	"iter"
)

// Source defines the interface for all line sources.
type Source interface {
	// Next returns the next raw line, without its line terminator.
	// At end of input it returns io.EOF.
	Next() (line string, err error)
}

// All returns an iterator over the lines of a source. A read failure is
// yielded once, with an empty line, and ends the sequence.
func All(src Source) iter.Seq2[string, error] {
	return func(yield func(line string, err error) bool) {
		for {
			line, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}
