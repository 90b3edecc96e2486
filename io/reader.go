package io

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Reader is a line source over any byte stream, such as a terminal.
// Lines of any length are returned whole; bounding them is up to the
// tokenizer.
type Reader struct {
	Name  string    // Name used in error reports.
	Input io.Reader // Byte stream to split into lines.

	reader *bufio.Reader
}

var _ Source = (*Reader)(nil)

// Next returns the next line from the input, without its terminator, or
// io.EOF.
func (rs *Reader) Next() (line string, err error) {
	if rs.reader == nil {
		rs.reader = bufio.NewReader(rs.Input)
	}

	line, err = rs.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) != 0 {
		// Final line without a terminator.
		err = nil
	}
	if err != nil {
		line = ""
		if !errors.Is(err, io.EOF) {
			err = &ErrSource{Name: rs.Name, Err: err}
		}
		return
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return
}
