package io

import (
	"os"
)

// File is a line source reading a program file.
type File struct {
	Reader

	file *os.File
}

// Open opens a program file as a line source. Failure to open is reported
// as ErrSourceUnavailable.
func Open(path string) (src *File, err error) {
	file, err := os.Open(path)
	if err != nil {
		err = &ErrSource{Name: path, Err: err}
		return
	}

	src = &File{
		Reader: Reader{Name: path, Input: file},
		file:   file,
	}

	return
}

// Close closes the underlying file.
func (fs *File) Close() error {
	return fs.file.Close()
}
